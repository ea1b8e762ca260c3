package models

import "time"

// PaymentMethod is how the customer settles an order.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodUPI  PaymentMethod = "UPI"
)

// PaymentStatus is the settlement state of an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// PaymentDetails holds the gateway identifiers and settlement status of an
// order. It is embedded in Order, not a separate aggregate.
type PaymentDetails struct {
	PaymentIntentID string        `json:"payment_intent_id"`
	PaymentMethodID string        `json:"payment_method_id"`
	Status          PaymentStatus `json:"status" gorm:"type:varchar(20)"`
}

// OrderItem is an immutable snapshot of one cart line inside an order.
// Items are owned exclusively by their order and are deleted with it.
type OrderItem struct {
	ID       uint    `json:"-" gorm:"primaryKey"`
	OrderRef uint    `json:"-" gorm:"index"`
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"` // Price at the time of order
	Quantity int     `json:"quantity"`
}

// Order represents a single customer transaction: cart contents, totals and
// settlement outcome. OrderID is the public identifier, assigned once at
// creation and never reused.
type Order struct {
	ID             uint           `json:"-" gorm:"primaryKey"`
	OrderID        string         `json:"order_id" gorm:"uniqueIndex;type:varchar(40)"`
	CustomerName   string         `json:"customer_name"`
	PhoneNumber    string         `json:"phone_number" gorm:"type:varchar(10)"`
	Subtotal       float64        `json:"subtotal"`
	Tax            float64        `json:"tax"`
	GrandTotal     float64        `json:"grand_total"`
	CreatedAt      time.Time      `json:"created_at"`
	Items          []OrderItem    `json:"items" gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE"`
	PaymentDetails PaymentDetails `json:"payment_details" gorm:"embedded;embeddedPrefix:payment_"`
	PaymentMethod  PaymentMethod  `json:"payment_method" gorm:"type:varchar(10)"`
}

// OrderItemRequest is one cart line as submitted by the client.
type OrderItemRequest struct {
	ItemID   string  `json:"item_id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
}

// OrderRequest is the cart submission used to create an order. Totals are
// client-computed; the validator checks shape and sign, not arithmetic.
type OrderRequest struct {
	CustomerName  string             `json:"customer_name" validate:"required"`
	PhoneNumber   string             `json:"phone_number" validate:"required,phone"`
	CartItems     []OrderItemRequest `json:"cart_items" validate:"required,min=1,dive"`
	Subtotal      float64            `json:"subtotal" validate:"required,gt=0"`
	Tax           float64            `json:"tax" validate:"gte=0"`
	GrandTotal    float64            `json:"grand_total" validate:"required,gt=0"`
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=CASH UPI"`
}

// TotalComparison selects how a grand-total filter value is compared.
// Equality is the historical behavior; AT_LEAST is a policy toggle.
type TotalComparison string

const (
	TotalCompareEqual   TotalComparison = "EQUAL"
	TotalCompareAtLeast TotalComparison = "AT_LEAST"
)

// OrderFilter narrows an order query. Absent fields match everything;
// present fields are combined conjunctively.
type OrderFilter struct {
	GrandTotal    *float64        `json:"grand_total"`
	PaymentMethod *PaymentMethod  `json:"payment_method"`
	TotalCompare  TotalComparison `json:"total_compare,omitempty"`
}

// PaymentRequest asks the gateway for a hosted checkout session.
type PaymentRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,len=3,alpha,uppercase"`
}

// PaymentVerificationRequest confirms a card payment against the gateway.
type PaymentVerificationRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
	OrderID         string `json:"order_id" validate:"required"`
}

// DashboardResponse is the aggregate view for the sales dashboard. Sales and
// count are zero (never null) on days without orders.
type DashboardResponse struct {
	TodaySales      float64 `json:"today_sales"`
	TodayOrderCount int64   `json:"today_order_count"`
	RecentOrders    []Order `json:"recent_orders"`
}
