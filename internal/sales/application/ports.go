package application

import (
	"context"

	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
	"github.com/dmehra2102/inventory-sales/pkg/outbox"
	"github.com/dmehra2102/inventory-sales/pkg/stockupdate"
)

// OrderRepository is the Order Store. Each method is a single-row transaction.
type OrderRepository interface {
	Create(ctx context.Context, o domain.Order) (domain.Order, error)
	Get(ctx context.Context, id int64) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	Delete(ctx context.Context, id int64) error
}

// StockQuery reads Inventory synchronously. Unknown products yield domain.ErrProductNotFound;
// any other error means Inventory could not answer.
type StockQuery interface {
	GetStock(ctx context.Context, productID int64) (domain.StockSnapshot, error)
}

// Reconciler is told about every order that committed but whose stock update could not be
// published. Inventory over-reports stock for that product until it is reconciled.
type Reconciler interface {
	PublishFailed(ctx context.Context, o domain.Order, msg stockupdate.Message, cause error)
}

type OutboxWriter interface {
	Enqueue(ctx context.Context, e outbox.Event) error
}
