package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/inventory-sales/internal/inventory/domain"
	"github.com/dmehra2102/inventory-sales/internal/inventory/infrastructure/memory"
)

func newProduct(stock int) domain.Product {
	return domain.Product{
		Name:          "Widget",
		Description:   "blue",
		Price:         decimal.RequireFromString("10.00"),
		StockQuantity: stock,
	}
}

func TestServiceCRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewRepository())

	created, err := svc.CreateProduct(ctx, newProduct(100))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	created.StockQuantity = 50
	require.NoError(t, svc.UpdateProduct(ctx, created))

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.StockQuantity)

	all, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	deleted, err := svc.DeleteProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = svc.GetStock(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestServiceRejectsInvalidProduct(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewRepository())

	p := newProduct(1)
	p.Name = ""
	_, err := svc.CreateProduct(ctx, p)
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)

	created, err := svc.CreateProduct(ctx, newProduct(1))
	require.NoError(t, err)
	created.StockQuantity = -3
	assert.ErrorIs(t, svc.UpdateProduct(ctx, created), domain.ErrInvalidProduct)
}

func TestApplyStockUpdateRejectsNonPositive(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.ApplyStockUpdate(context.Background(), 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}
