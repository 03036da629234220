package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewConfirmedOrderPricesAtUnitPrice(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	o := NewConfirmedOrder(1, 5, decimal.RequireFromString("10.00"), now)

	assert.Equal(t, StatusConfirmed, o.Status)
	assert.True(t, o.TotalPrice.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, time.UTC, o.CreatedAt.Location())
}

func TestRejectionErrorMatchesSentinels(t *testing.T) {
	err := Reject(ReasonInventoryUnavailable, "", context.DeadlineExceeded)

	assert.ErrorIs(t, err, ErrInventoryUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrInsufficientStock)
	assert.True(t, err.Retryable())

	var rej *RejectionError
	assert.True(t, errors.As(error(Reject(ReasonInsufficientStock, "requested 150, available 100", nil)), &rej))
	assert.Equal(t, ReasonInsufficientStock, rej.Reason)
	assert.Equal(t, "insufficient stock: requested 150, available 100", rej.Error())
	assert.False(t, rej.Retryable())
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, OrderStatus("Cancelled").Valid())
}
