package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductValidate(t *testing.T) {
	valid := Product{Name: "Widget", Price: decimal.RequireFromString("10.00"), StockQuantity: 0}
	assert.NoError(t, valid.Validate())

	padded := valid
	padded.Price = decimal.RequireFromString("10.500")
	assert.NoError(t, padded.Validate())

	tests := []struct {
		name string
		mut  func(p *Product)
	}{
		{"blank name", func(p *Product) { p.Name = "  " }},
		{"zero price", func(p *Product) { p.Price = decimal.Zero }},
		{"negative price", func(p *Product) { p.Price = decimal.RequireFromString("-1") }},
		{"sub-cent price", func(p *Product) { p.Price = decimal.RequireFromString("10.005") }},
		{"negative stock", func(p *Product) { p.StockQuantity = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mut(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidProduct)
		})
	}
}

func TestDecrement(t *testing.T) {
	c := Decrement(1, 100, 5)
	assert.Equal(t, 95, c.After)
	assert.False(t, c.Clamped())

	c = Decrement(1, 95, 1000)
	assert.Equal(t, 0, c.After)
	assert.True(t, c.Clamped())

	c = Decrement(1, 5, 5)
	assert.Equal(t, 0, c.After)
	assert.False(t, c.Clamped())
}
