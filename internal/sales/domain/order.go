package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusConfirmed OrderStatus = "Confirmed"
	StatusRejected  OrderStatus = "Rejected"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected:
		return true
	}
	return false
}

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Order references a product in Inventory's namespace; the reference is not enforced locally.
// TotalPrice is fixed at confirmation time.
type Order struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	Status     OrderStatus     `json:"status"`
}

// NewConfirmedOrder prices quantity units at unitPrice.
func NewConfirmedOrder(productID int64, quantity int, unitPrice decimal.Decimal, now time.Time) Order {
	return Order{
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:  now.UTC(),
		Status:     StatusConfirmed,
	}
}

// StockSnapshot is a point-in-time read of a product's price and stock. It is not locked
// against concurrent orders.
type StockSnapshot struct {
	ProductID     int64
	Price         decimal.Decimal
	StockQuantity int64
}

type RejectReason string

const (
	ReasonInvalidQuantity      RejectReason = "invalid-quantity"
	ReasonNotFound             RejectReason = "not-found"
	ReasonInsufficientStock    RejectReason = "insufficient-stock"
	ReasonInventoryUnavailable RejectReason = "inventory-unavailable"
)

var (
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInventoryUnavailable = errors.New("inventory unavailable")
)

var reasonErrors = map[RejectReason]error{
	ReasonInvalidQuantity:      ErrInvalidQuantity,
	ReasonNotFound:             ErrProductNotFound,
	ReasonInsufficientStock:    ErrInsufficientStock,
	ReasonInventoryUnavailable: ErrInventoryUnavailable,
}

// RejectionError is returned when an order is refused before anything was written.
type RejectionError struct {
	Reason RejectReason
	Detail string
	Cause  error
}

func Reject(reason RejectReason, detail string, cause error) *RejectionError {
	return &RejectionError{Reason: reason, Detail: detail, Cause: cause}
}

func (e *RejectionError) Error() string {
	msg := reasonErrors[e.Reason].Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *RejectionError) Unwrap() []error {
	errs := []error{reasonErrors[e.Reason]}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Retryable reports whether the same request may succeed later without any change.
func (e *RejectionError) Retryable() bool {
	return e.Reason == ReasonInventoryUnavailable
}
