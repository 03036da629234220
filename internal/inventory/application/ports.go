package application

import (
	"context"

	"github.com/dmehra2102/inventory-sales/internal/inventory/domain"
)

// ProductRepository is the Inventory Store. Each method is a single-row transaction.
type ProductRepository interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id int64) (domain.Product, error)
	// ApplyDecrement locks the row, subtracts delta floored at zero and stores the result.
	ApplyDecrement(ctx context.Context, id int64, delta int) (domain.StockChange, error)
}

// Deduplicator remembers stock update tokens that were already applied.
type Deduplicator interface {
	Seen(ctx context.Context, token string) (bool, error)
	Forget(ctx context.Context, token string) error
}
