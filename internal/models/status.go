package models

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

var validOrderNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:    {OrderStatusProcessing: true, OrderStatusCancelled: true},
	OrderStatusProcessing: {OrderStatusShipped: true, OrderStatusCancelled: true},
	OrderStatusShipped:    {OrderStatusDelivered: true},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := validOrderNext[s]
	return ok
}

// CanTransition reports whether to is a legal successor of s.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return validOrderNext[s][to]
}

type ReturnStatus string

const (
	ReturnStatusPending   ReturnStatus = "pending"
	ReturnStatusApproved  ReturnStatus = "approved"
	ReturnStatusShipped   ReturnStatus = "shipped"
	ReturnStatusReceived  ReturnStatus = "received"
	ReturnStatusCompleted ReturnStatus = "completed"
	ReturnStatusRejected  ReturnStatus = "rejected"
)

var validReturnNext = map[ReturnStatus]map[ReturnStatus]bool{
	ReturnStatusPending:   {ReturnStatusApproved: true, ReturnStatusRejected: true},
	ReturnStatusApproved:  {ReturnStatusShipped: true},
	ReturnStatusShipped:   {ReturnStatusReceived: true},
	ReturnStatusReceived:  {ReturnStatusCompleted: true},
	ReturnStatusCompleted: {},
	ReturnStatusRejected:  {},
}

func (s ReturnStatus) Valid() bool {
	_, ok := validReturnNext[s]
	return ok
}

func (s ReturnStatus) CanTransition(to ReturnStatus) bool {
	return validReturnNext[s][to]
}

// ReturnReasons mirrors the values the storefront offers on the return form.
var ReturnReasons = map[string]bool{
	"Wrong size":          true,
	"Not as described":    true,
	"Changed mind":        true,
	"Defective/damaged":   true,
	"Received wrong item": true,
	"Other":               true,
}

var ProductCategories = map[string]bool{
	"men":         true,
	"women":       true,
	"accessories": true,
}

var ProductSizes = map[string]bool{
	"XS": true, "S": true, "M": true, "L": true, "XL": true, "XXL": true,
}
