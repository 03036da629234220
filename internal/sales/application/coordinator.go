package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
	"github.com/dmehra2102/inventory-sales/pkg/stockupdate"
)

type CoordinatorConfig struct {
	QueryTimeout   time.Duration
	PublishTimeout time.Duration
}

// Coordinator turns an order request into a Confirmed order or a rejection.
//
// The stock check runs against an unlocked snapshot, so concurrent orders for the same
// product can all pass it before any of their decrements reach Inventory. Once the order
// row is written the order stays Confirmed whatever happens to the publish.
type Coordinator struct {
	log        *slog.Logger
	orders     OrderRepository
	stock      StockQuery
	publisher  stockupdate.Publisher
	reconciler Reconciler
	cfg        CoordinatorConfig
	now        func() time.Time
	tracer     trace.Tracer
}

func NewCoordinator(log *slog.Logger, orders OrderRepository, stock StockQuery, publisher stockupdate.Publisher, reconciler Reconciler, cfg CoordinatorConfig) *Coordinator {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 2 * time.Second
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 5 * time.Second
	}
	return &Coordinator{
		log:        log,
		orders:     orders,
		stock:      stock,
		publisher:  publisher,
		reconciler: reconciler,
		cfg:        cfg,
		now:        time.Now,
		tracer:     otel.Tracer("sales-coordinator"),
	}
}

func (c *Coordinator) PlaceOrder(ctx context.Context, productID int64, quantity int) (domain.Order, error) {
	ctx, span := c.tracer.Start(ctx, "PlaceOrder", trace.WithAttributes(
		attribute.Int64("product.id", productID),
		attribute.Int("order.quantity", quantity),
	))
	defer span.End()

	order, err := c.placeOrder(ctx, productID, quantity)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		var rej *domain.RejectionError
		if errors.As(err, &rej) {
			span.SetAttributes(attribute.String("order.rejection", string(rej.Reason)))
			c.log.Warn("order rejected", "product_id", productID, "quantity", quantity, "reason", rej.Reason, "err", err)
		}
		return domain.Order{}, err
	}
	span.SetAttributes(attribute.Int64("order.id", order.ID))
	return order, nil
}

func (c *Coordinator) placeOrder(ctx context.Context, productID int64, quantity int) (domain.Order, error) {
	if quantity <= 0 {
		return domain.Order{}, domain.Reject(domain.ReasonInvalidQuantity, fmt.Sprintf("quantity must be positive, got %d", quantity), nil)
	}

	snap, err := c.queryStock(ctx, productID)
	if errors.Is(err, domain.ErrProductNotFound) {
		return domain.Order{}, domain.Reject(domain.ReasonNotFound, fmt.Sprintf("product %d", productID), nil)
	}
	if err != nil {
		return domain.Order{}, domain.Reject(domain.ReasonInventoryUnavailable, "", err)
	}

	if snap.StockQuantity < int64(quantity) {
		return domain.Order{}, domain.Reject(domain.ReasonInsufficientStock,
			fmt.Sprintf("requested %d, available %d", quantity, snap.StockQuantity), nil)
	}

	order, err := c.orders.Create(ctx, domain.NewConfirmedOrder(productID, quantity, snap.Price, c.now()))
	if err != nil {
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}
	c.log.Info("order created", "order_id", order.ID, "product_id", productID, "quantity", quantity, "total_price", order.TotalPrice.String())

	c.publishStockUpdate(ctx, order)
	return order, nil
}

func (c *Coordinator) queryStock(ctx context.Context, productID int64) (domain.StockSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()
	return c.stock.GetStock(ctx, productID)
}

// publishStockUpdate never fails the order. The request context may already be gone by the
// time the order is committed, so the publish gets its own deadline, and the reconciler gets
// a fresh one because a publish that timed out has used all of it.
func (c *Coordinator) publishStockUpdate(ctx context.Context, order domain.Order) {
	msg := stockupdate.NewMessage(order.ProductID, order.Quantity)
	detached := context.WithoutCancel(ctx)

	pubCtx, cancel := context.WithTimeout(detached, c.cfg.PublishTimeout)
	err := c.publisher.Publish(pubCtx, msg)
	cancel()
	if err == nil {
		c.log.Debug("stock update published", "order_id", order.ID, "message_id", msg.ID)
		return
	}

	trace.SpanFromContext(ctx).RecordError(err)
	c.log.Error("stock update publish failed after commit",
		"order_id", order.ID, "product_id", order.ProductID, "quantity", order.Quantity, "message_id", msg.ID, "err", err)

	recCtx, cancel := context.WithTimeout(detached, c.cfg.PublishTimeout)
	defer cancel()
	c.reconciler.PublishFailed(recCtx, order, msg, err)
}
