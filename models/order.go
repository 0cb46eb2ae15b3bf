package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string
type PaymentStatus string
type PaymentMethod string
type ShippingMethod string

const (
	OrderStatusPending          OrderStatus = "pending"
	OrderStatusPaid             OrderStatus = "paid"
	OrderStatusProcessing       OrderStatus = "processing"
	OrderStatusShipped          OrderStatus = "shipped"
	OrderStatusCompleted        OrderStatus = "completed"
	OrderStatusCancelled        OrderStatus = "cancelled"
	OrderStatusReturnRequested  OrderStatus = "return_requested"
	OrderStatusReplaceRequested OrderStatus = "replace_requested"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"

	PaymentMethodCOD      PaymentMethod = "cod"
	PaymentMethodRazorpay PaymentMethod = "razorpay"

	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// transitions lists the allowed next statuses for each order status.
// Payment confirmation drives pending -> paid; everything else is
// admin-triggered.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:          {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:             {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:       {OrderStatusShipped},
	OrderStatusShipped:          {OrderStatusCompleted},
	OrderStatusCompleted:        {OrderStatusReturnRequested, OrderStatusReplaceRequested},
	OrderStatusReturnRequested:  {OrderStatusCompleted},
	OrderStatusReplaceRequested: {OrderStatusCompleted},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseOrderStatus maps a request string onto the status enum.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(s)) {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled,
		OrderStatusReturnRequested, OrderStatusReplaceRequested:
		return OrderStatus(strings.ToLower(s)), nil
	default:
		return "", errors.New("invalid order status")
	}
}

// ParsePaymentMethod validates a client-supplied payment method reference.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(s)) {
	case PaymentMethodCOD, PaymentMethodRazorpay:
		return PaymentMethod(strings.ToLower(s)), nil
	default:
		return "", errors.New("invalid payment method")
	}
}

type Order struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef string `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID   string `gorm:"index;not null" json:"user_id"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	Subtotal         float64 `json:"subtotal"`
	DeliveryCharge   float64 `json:"delivery_charge"`
	MarketplaceFee   float64 `json:"marketplace_fee"`
	Tax              float64 `json:"tax"`
	GiftCardDiscount float64 `json:"gift_card_discount"`
	GrandTotal       float64 `json:"grand_total"`

	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`

	ShippingMethod ShippingMethod `gorm:"type:VARCHAR(20)" json:"shipping_method"`
	// Shipping address snapshot, copied from the user's address at order time.
	ShipName       string `json:"ship_name"`
	ShipLine1      string `json:"ship_line1"`
	ShipLine2      string `json:"ship_line2"`
	ShipCity       string `json:"ship_city"`
	ShipState      string `json:"ship_state"`
	ShipCountry    string `json:"ship_country"`
	ShipPostalCode string `json:"ship_postal_code"`
	ShipPhone      string `json:"ship_phone"`

	GiftCardCode      string `json:"gift_card_code,omitempty"`
	ProviderOrderID   string `gorm:"index" json:"provider_order_id,omitempty"`
	ProviderPaymentID string `json:"provider_payment_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is a frozen snapshot of a validated cart line. Later edits to
// the product must never change these rows.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}
