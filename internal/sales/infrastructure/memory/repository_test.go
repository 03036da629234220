package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
)

func TestRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()

	a, err := r.Create(ctx, domain.NewConfirmedOrder(1, 2, decimal.RequireFromString("3.50"), time.Now()))
	require.NoError(t, err)
	b, err := r.Create(ctx, domain.NewConfirmedOrder(1, 1, decimal.RequireFromString("3.50"), time.Now()))
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	require.NoError(t, r.UpdateStatus(ctx, a.ID, domain.StatusRejected))
	got, err := r.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, got.Status)
	assert.True(t, decimal.RequireFromString("7").Equal(got.TotalPrice))

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)

	require.NoError(t, r.Delete(ctx, a.ID))
	_, err = r.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.ErrorIs(t, r.Delete(ctx, a.ID), domain.ErrOrderNotFound)
	assert.ErrorIs(t, r.UpdateStatus(ctx, 99, domain.StatusPending), domain.ErrOrderNotFound)
}
