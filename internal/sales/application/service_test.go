package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
	"github.com/dmehra2102/inventory-sales/internal/sales/infrastructure/memory"
)

func TestServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	svc := NewService(repo)
	o, err := repo.Create(ctx, domain.NewConfirmedOrder(1, 2, decimal.NewFromInt(5), time.Now()))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, o.ID, domain.StatusRejected))
	got, err := svc.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, got.Status)
	assert.Equal(t, 2, got.Quantity)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, o.ID, "Shipped"), domain.ErrInvalidStatus)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 42, domain.StatusPending), domain.ErrOrderNotFound)
}

func TestServiceListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	svc := NewService(repo)
	for i := 1; i <= 3; i++ {
		_, err := repo.Create(ctx, domain.NewConfirmedOrder(int64(i), 1, decimal.NewFromInt(1), time.Now()))
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteOrder(ctx, 2))
	all, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []int64{1, 3}, []int64{all[0].ID, all[1].ID})
	assert.ErrorIs(t, svc.DeleteOrder(ctx, 2), domain.ErrOrderNotFound)
}
