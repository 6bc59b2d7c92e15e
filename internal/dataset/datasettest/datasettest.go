// Package datasettest builds throwaway SQLite sales datasets for tests.
package datasettest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/salesquery/internal/dataset"
	"github.com/leapstack-labs/salesquery/pkg/core"
	"github.com/stretchr/testify/require"
)

// Product returns a products row with the fields the catalogue reads.
func Product(code, name, vendor string) core.Row {
	return core.Row{
		"productCode":        code,
		"productName":        name,
		"productLine":        "Classic Cars",
		"productScale":       "1:18",
		"productVendor":      vendor,
		"productDescription": "",
		"quantityInStock":    "0",
		"buyPrice":           10.0,
		"MSRP":               20.0,
	}
}

// Order returns an orders row. Pass "" as shipped for an unshipped order.
func Order(number int, ordered, shipped, status, comments string, customer int) core.Row {
	return core.Row{
		"orderNumber":    number,
		"orderDate":      ordered,
		"requiredDate":   ordered,
		"shippedDate":    shipped,
		"status":         status,
		"comments":       comments,
		"customerNumber": customer,
	}
}

// New writes products and orders into a fresh dataset file and returns its path.
func New(t testing.TB, products, orders []core.Row) string {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.sqlite")

	ds, err := dataset.Create(ctx, path, nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, ds.Close()) }()

	if len(products) > 0 {
		require.NoError(t, ds.Insert(ctx, dataset.Products.Name, products...))
	}
	if len(orders) > 0 {
		require.NoError(t, ds.Insert(ctx, dataset.Orders.Name, orders...))
	}
	return path
}

// Sample returns a dataset drawn from the classic models catalog: a dozen
// products with text stock levels and a mix of shipped, open, cancelled and
// resolved orders.
func Sample(t testing.TB) string {
	t.Helper()
	return New(t, SampleProducts(), SampleOrders())
}

// SampleProducts returns the products used by Sample.
func SampleProducts() []core.Row {
	rows := []struct {
		code, name, vendor, desc, qty string
		msrp                          float64
	}{
		{"S10_1678", "1969 Harley Davidson Ultimate Chopper", "Min Lin Diecast", "This replica features working kickstand, front suspension, gear-shift lever, footbrake lever, drive chain, wheels and steering.", "7933", 95.70},
		{"S10_1949", "1952 Alpine Renault 1300", "Classic Metal Creations", "Turnable front wheels; steering function; detailed interior; detailed engine; opening hood; opening trunk; opening doors; and detailed chassis.", "7305", 214.30},
		{"S10_2016", "1996 Moto Guzzi 1100i", "Highway 66 Mini Classics", "Official Moto Guzzi logos and insignias, saddle bags located on side of motorcycle.", "6625", 118.94},
		{"S10_4698", "2003 Harley-Davidson Eagle Drag Bike", "Red Start Diecast", "Model features, official Harley Davidson logos and insignias.", "5582", 193.66},
		{"S10_4757", "1972 Alfa Romeo GTA", "Motor City Art Classics", "Features include: Turnable front wheels; steering function.", "3252", 136.00},
		{"S12_1099", "1968 Ford Mustang", "Autoart Studio Design", "Hood, doors and trunk all open to reveal highly detailed interior features.", "68", 194.57},
		{"S12_1108", "2001 Ferrari Enzo", "Second Gear Diecast", "Turnable front wheels.", "3619", 207.80},
		{"S12_1666", "1958 Setra Bus", "Welly Diecast Productions", "Model features 30 windows, skylights & glare resistant glass.", "1579", 136.67},
		{"S12_2823", "2002 Suzuki XREO", "Unimax Art Galleries", "Official logos and insignias.", "9997", 150.62},
		{"S12_3148", "1969 Corvair Monza", "Welly Diecast Productions", "1:18 scale die-cast about 10\" long doors open, hood opens.", "6906", 151.08},
		{"S12_3380", "1968 Dodge Charger", "Welly Diecast Productions", "1:12 scale model of a 1968 Dodge Charger.", "9123", 117.44},
		{"S12_3891", "1969 Ford Falcon", "Second Gear Diecast", "Turnable front wheels; steering function; detailed interior.", "1049", 173.02},
	}

	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		p := Product(r.code, r.name, r.vendor)
		p["productDescription"] = r.desc
		p["quantityInStock"] = r.qty
		p["MSRP"] = r.msrp
		out = append(out, p)
	}
	return out
}

// SampleOrders returns the orders used by Sample.
func SampleOrders() []core.Row {
	return []core.Row{
		Order(10100, "2003-01-06", "2003-01-10", "Shipped", "", 363),
		Order(10101, "2003-01-09", "2003-01-11", "Shipped", "Check on availability.", 128),
		Order(10102, "2003-01-10", "2003-01-14", "Shipped", "", 181),
		Order(10103, "2003-01-29", "2003-02-02", "Shipped", "", 121),
		Order(10164, "2003-10-21", "2003-10-23", "Resolved", "This order was disputed, but resolved on 12/1/2003 (Customer billed twice); also suffered from slow fulfillment of the customer's order.", 452),
		Order(10165, "2003-10-22", "2003-12-26", "Shipped", "This order was on hold because customers's credit limit had been exceeded. Order will ship when payment is received", 148),
		Order(10167, "2003-10-23", "", "Cancelled", "Customer called to cancel. The warehouse was notified in time and the order didn't ship. They have a new VP of Sales and are shifting their sales model. Our VP of Sales should contact them.", 448),
		Order(10179, "2003-11-11", "2003-11-13", "Cancelled", "Customer cancelled due to urgent budgeting issues. Must be cautious when dealing with them in the future. Since order shipped already we must discuss who would cover the shipping charges.", 496),
		Order(10248, "2004-05-07", "", "Cancelled", "Order was mistakenly placed. The warehouse noticed the lack of documentation.", 131),
		Order(10253, "2004-06-01", "", "Cancelled", "Customer disputed the order and we agreed to cancel it.", 201),
		Order(10327, "2004-11-10", "2004-11-13", "Resolved", "Order was disputed and resolved on 12/1/04. The Sales Manager was involved. Customer claims the scales of the models don't match what was discussed.", 145),
		Order(10334, "2004-11-19", "", "On Hold", "The outstanding balance for this customer exceeds their credit limit. Order will be shipped when a payment is received.", 144),
		Order(10401, "2005-04-03", "", "On Hold", "Customer credit limit exceeded. Will ship when a payment is received.", 328),
		Order(10414, "2005-05-06", "", "On Hold", "Customer credit limit exceeded. Will ship when a payment is received.", 362),
		Order(10420, "2005-05-29", "", "In Process", "", 282),
		Order(10421, "2005-05-29", "", "In Process", "Custom shipping instructions were sent to warehouse", 124),
		Order(10422, "2005-05-30", "", "In Process", "", 157),
		Order(10423, "2005-05-30", "", "In Process", "", 314),
		Order(10424, "2005-05-31", "", "In Process", "", 141),
		Order(10425, "2005-05-31", "", "In Process", "", 119),
	}
}
