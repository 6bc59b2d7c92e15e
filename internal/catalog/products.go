package catalog

import (
	"context"
	"fmt"
)

// Product is a full products row.
type Product struct {
	Code            string  `mapstructure:"productCode"`
	Name            string  `mapstructure:"productName"`
	Line            string  `mapstructure:"productLine"`
	Scale           string  `mapstructure:"productScale"`
	Vendor          string  `mapstructure:"productVendor"`
	Description     string  `mapstructure:"productDescription"`
	QuantityInStock string  `mapstructure:"quantityInStock"`
	BuyPrice        float64 `mapstructure:"buyPrice"`
	MSRP            float64 `mapstructure:"MSRP"`
}

// DescriptionLength pairs a product with the length of its description.
type DescriptionLength struct {
	Name              string `mapstructure:"productName"`
	DescriptionLength int64  `mapstructure:"description_length"`
}

// ProductName is a bare product name.
type ProductName struct {
	Name string `mapstructure:"productName"`
}

// VendorProduct is a vendor, name and price triple.
type VendorProduct struct {
	Vendor string  `mapstructure:"productVendor"`
	Name   string  `mapstructure:"productName"`
	MSRP   float64 `mapstructure:"MSRP"`
}

// VendorCounts holds distinct vendor and product name counts.
type VendorCounts struct {
	Vendors int64 `mapstructure:"num_product_vendors"`
	Names   int64 `mapstructure:"num_product_names"`
}

// Stock is a product name with its quantity exactly as stored (text).
type Stock struct {
	Name            string `mapstructure:"productName"`
	QuantityInStock string `mapstructure:"quantityInStock"`
}

var (
	allProducts = Query{
		Name:  "all_products",
		Title: "Products",
		build: static(`SELECT *
  FROM "products"`),
	}

	productsByName = Query{
		Name:  "products_by_name",
		Title: "Products ordered by name",
		build: static(`SELECT *
  FROM "products"
 ORDER BY "productName"`),
	}

	productsByNameAsc = Query{
		Name:  "products_by_name_asc",
		Title: "Products ordered by name (explicit ASC, same order)",
		build: static(`SELECT *
  FROM "products"
 ORDER BY "productName" ASC`),
	}

	productsByNameDesc = Query{
		Name:  "products_by_name_desc",
		Title: "Products ordered by name descending",
		build: static(`SELECT *
  FROM "products"
 ORDER BY "productName" DESC`),
	}

	descriptionLengths = Query{
		Name:  "description_lengths",
		Title: "Products ordered by description length",
		build: static(`SELECT "productName", length("productDescription") AS "description_length"
  FROM "products"
 ORDER BY "description_length"`),
	}

	namesByDescriptionLength = Query{
		Name:  "names_by_description_length",
		Title: "Product names ordered by description length (key not selected)",
		build: static(`SELECT "productName"
  FROM "products"
 ORDER BY length("productDescription")`),
	}

	productsByVendorName = Query{
		Name:  "products_by_vendor_name",
		Title: "Products ordered by vendor, then name",
		build: static(`SELECT "productVendor", "productName", "MSRP"
  FROM "products"
 ORDER BY "productVendor", "productName"`),
	}

	productsByNameVendor = Query{
		Name:  "products_by_name_vendor",
		Title: "Products ordered by name, then vendor",
		build: static(`SELECT "productVendor", "productName", "MSRP"
  FROM "products"
 ORDER BY "productName", "productVendor"`),
	}

	distinctCounts = Query{
		Name:  "distinct_counts",
		Title: "Distinct product vendors and names",
		build: static(`SELECT COUNT(DISTINCT "productVendor") AS "num_product_vendors",
       COUNT(DISTINCT "productName") AS "num_product_names"
  FROM "products"`),
	}

	// quantityInStock is text, so this sorts "10" before "9".
	stockLexical = Query{
		Name:  "stock_lexical",
		Title: "Stock ordered as text (lexical)",
		build: static(`SELECT "productName", "quantityInStock"
  FROM "products"
 ORDER BY "quantityInStock"`),
	}

	stockLexicalTop10 = Query{
		Name:  "stock_lexical_top10",
		Title: "Stock ordered as text, first 10",
		Limit: 10,
		build: stockLexical.build,
	}

	stockNumericTop10 = Query{
		Name:  "stock_numeric_top10",
		Title: "Stock ordered as integer, first 10",
		Limit: 10,
		build: static(`SELECT "productName", "quantityInStock"
  FROM "products"
 ORDER BY CAST("quantityInStock" AS INTEGER)`),
	}

	stockNumeric = Query{
		Name:  "stock_numeric",
		Title: "Stock ordered as integer",
		build: stockNumericTop10.build,
	}
)

// AllProducts returns every product in storage order.
func AllProducts(ctx context.Context, src Source) ([]Product, error) {
	return fetch[Product](ctx, src, allProducts)
}

// ProductsByName returns every product ordered by name.
func ProductsByName(ctx context.Context, src Source) ([]Product, error) {
	return fetch[Product](ctx, src, productsByName)
}

// ProductsByNameAsc is ProductsByName with an explicit ASC.
func ProductsByNameAsc(ctx context.Context, src Source) ([]Product, error) {
	return fetch[Product](ctx, src, productsByNameAsc)
}

// ProductsByNameDesc returns every product in reverse name order.
func ProductsByNameDesc(ctx context.Context, src Source) ([]Product, error) {
	return fetch[Product](ctx, src, productsByNameDesc)
}

// DescriptionLengths returns names with description lengths, shortest first.
func DescriptionLengths(ctx context.Context, src Source) ([]DescriptionLength, error) {
	return fetch[DescriptionLength](ctx, src, descriptionLengths)
}

// NamesByDescriptionLength returns names in DescriptionLengths order
// without selecting the length.
func NamesByDescriptionLength(ctx context.Context, src Source) ([]ProductName, error) {
	return fetch[ProductName](ctx, src, namesByDescriptionLength)
}

// ProductsByVendorName orders by vendor, breaking ties on name.
func ProductsByVendorName(ctx context.Context, src Source) ([]VendorProduct, error) {
	return fetch[VendorProduct](ctx, src, productsByVendorName)
}

// ProductsByNameVendor orders by name, breaking ties on vendor.
func ProductsByNameVendor(ctx context.Context, src Source) ([]VendorProduct, error) {
	return fetch[VendorProduct](ctx, src, productsByNameVendor)
}

// DistinctCounts counts distinct vendors and product names.
func DistinctCounts(ctx context.Context, src Source) (VendorCounts, error) {
	recs, err := fetch[VendorCounts](ctx, src, distinctCounts)
	if err != nil {
		return VendorCounts{}, err
	}
	if len(recs) != 1 {
		return VendorCounts{}, fmt.Errorf("%s: expected 1 row, got %d", distinctCounts.Name, len(recs))
	}
	return recs[0], nil
}

// StockLexical orders stock levels as strings.
func StockLexical(ctx context.Context, src Source) ([]Stock, error) {
	return fetch[Stock](ctx, src, stockLexical)
}

// StockLexicalTop10 is the first 10 rows of StockLexical.
func StockLexicalTop10(ctx context.Context, src Source) ([]Stock, error) {
	return fetch[Stock](ctx, src, stockLexicalTop10)
}

// StockNumericTop10 is the 10 lowest stock levels compared as integers.
func StockNumericTop10(ctx context.Context, src Source) ([]Stock, error) {
	return fetch[Stock](ctx, src, stockNumericTop10)
}

// StockNumeric orders every stock level as an integer.
func StockNumeric(ctx context.Context, src Source) ([]Stock, error) {
	return fetch[Stock](ctx, src, stockNumeric)
}
