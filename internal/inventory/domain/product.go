package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrProductNotFound = errors.New("product not found")
)

// PriceScale is the number of decimal places a price is stored with.
const PriceScale = 2

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidProduct)
	}
	if !p.Price.Equal(p.Price.Round(PriceScale)) {
		return fmt.Errorf("%w: price must have at most %d decimal places", ErrInvalidProduct, PriceScale)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity must not be negative", ErrInvalidProduct)
	}
	return nil
}

// StockChange records one decrement applied to a product.
type StockChange struct {
	ProductID int64
	Requested int
	Before    int
	After     int
}

// Clamped reports whether the decrement asked for more than was in stock and was floored
// at zero. A clamped change means orders were confirmed against stock that no longer existed.
func (c StockChange) Clamped() bool {
	return c.Requested > c.Before
}

// Decrement subtracts delta from stock and floors the result at zero.
func Decrement(productID int64, stock, delta int) StockChange {
	after := stock - delta
	if after < 0 {
		after = 0
	}
	return StockChange{ProductID: productID, Requested: delta, Before: stock, After: after}
}
