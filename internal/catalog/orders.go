package catalog

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/salesquery/pkg/dialect"
)

// Order is a full orders row. ShippedDate is "" until the order ships.
type Order struct {
	Number         int64  `mapstructure:"orderNumber"`
	OrderDate      string `mapstructure:"orderDate"`
	RequiredDate   string `mapstructure:"requiredDate"`
	ShippedDate    string `mapstructure:"shippedDate"`
	Status         string `mapstructure:"status"`
	Comments       string `mapstructure:"comments"`
	CustomerNumber int64  `mapstructure:"customerNumber"`
}

// Shipped reports whether the order has a ship date.
func (o Order) Shipped() bool {
	return o.ShippedDate != ""
}

// CustomerOrderDate is a distinct customer and order date pair.
type CustomerOrderDate struct {
	CustomerNumber int64  `mapstructure:"customerNumber"`
	OrderDate      string `mapstructure:"orderDate"`
}

// Fulfillment is a shipped order with the calendar days it took to ship.
type Fulfillment struct {
	Order         `mapstructure:",squash"`
	DaysToFulfill int64 `mapstructure:"days_to_fulfill"`
}

// Order statuses the catalogue filters on.
const (
	StatusCancelled = "Cancelled"
	StatusResolved  = "Resolved"
)

var (
	firstOrders = Query{
		Name:  "first_orders",
		Title: "First 5 orders",
		Limit: 5,
		build: static(`SELECT *
  FROM "orders"`),
	}

	// NULLS LAST pins SQLite's ordering so other engines agree.
	longestComments = Query{
		Name:  "longest_comments",
		Title: "Top 10 longest order comments",
		Limit: 10,
		build: static(`SELECT *
  FROM "orders"
 ORDER BY length("comments") DESC NULLS LAST`),
	}

	longestCancelledComments = Query{
		Name:  "longest_cancelled_comments",
		Title: "Top 10 longest comments on cancelled orders",
		Limit: 10,
		build: static(`SELECT *
  FROM "orders"
 WHERE "status" = '` + StatusCancelled + `'
 ORDER BY length("comments") DESC NULLS LAST`),
	}

	longestCancelledResolvedComments = Query{
		Name:  "longest_cancelled_resolved_comments",
		Title: "Top 10 longest comments on cancelled or resolved orders",
		Limit: 10,
		build: static(`SELECT *
  FROM "orders"
 WHERE "status" IN ('` + StatusCancelled + `', '` + StatusResolved + `')
 ORDER BY length("comments") DESC NULLS LAST`),
	}

	firstCustomerOrderDates = Query{
		Name:  "first_customer_order_dates",
		Title: "Distinct customers and order dates, earliest 5",
		Limit: 5,
		build: static(`SELECT DISTINCT "customerNumber", "orderDate"
  FROM "orders"
 ORDER BY "orderDate"`),
	}

	openOrders = Query{
		Name:  "open_orders",
		Title: "Top 10 unshipped, non-cancelled orders by order date",
		Limit: 10,
		build: static(`SELECT *
  FROM "orders"
 WHERE "shippedDate" = ''
   AND "status" != '` + StatusCancelled + `'
 ORDER BY "orderDate" DESC`),
	}

	// Ties on duration go to the lowest order number.
	longestFulfillment = Query{
		Name:  "longest_fulfillment",
		Title: "Order that took longest to fulfill",
		Limit: 1,
		build: func(d *dialect.Dialect) string {
			return fmt.Sprintf(`SELECT *,
       %s AS "days_to_fulfill"
  FROM "orders"
 WHERE "shippedDate" != ''
 ORDER BY "days_to_fulfill" DESC, "orderNumber" ASC`, d.DaysBetween(`"orderDate"`, `"shippedDate"`))
		},
	}
)

// FirstOrders returns up to 5 orders in storage order.
func FirstOrders(ctx context.Context, src Source) ([]Order, error) {
	return fetch[Order](ctx, src, firstOrders)
}

// LongestComments returns the 10 orders with the longest comments.
func LongestComments(ctx context.Context, src Source) ([]Order, error) {
	return fetch[Order](ctx, src, longestComments)
}

// LongestCancelledComments is LongestComments restricted to cancelled orders.
func LongestCancelledComments(ctx context.Context, src Source) ([]Order, error) {
	return fetch[Order](ctx, src, longestCancelledComments)
}

// LongestCancelledOrResolvedComments is LongestComments restricted to
// cancelled or resolved orders.
func LongestCancelledOrResolvedComments(ctx context.Context, src Source) ([]Order, error) {
	return fetch[Order](ctx, src, longestCancelledResolvedComments)
}

// FirstCustomerOrderDates returns the 5 earliest distinct customer/date pairs.
func FirstCustomerOrderDates(ctx context.Context, src Source) ([]CustomerOrderDate, error) {
	return fetch[CustomerOrderDate](ctx, src, firstCustomerOrderDates)
}

// OpenOrders returns up to 10 unshipped orders that are not cancelled,
// newest first.
func OpenOrders(ctx context.Context, src Source) ([]Order, error) {
	return fetch[Order](ctx, src, openOrders)
}

// LongestFulfillment returns the shipped order with the most days between
// order and shipment, or nil if nothing has shipped.
func LongestFulfillment(ctx context.Context, src Source) (*Fulfillment, error) {
	recs, err := fetch[Fulfillment](ctx, src, longestFulfillment)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}
