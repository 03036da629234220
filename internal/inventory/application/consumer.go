package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmehra2102/inventory-sales/internal/inventory/domain"
	"github.com/dmehra2102/inventory-sales/pkg/stockupdate"
)

// releaseTimeout bounds the token release that follows a failed apply. It runs after the
// delivery context may already be cancelled.
const releaseTimeout = 2 * time.Second

// StockUpdateConsumer applies decrement instructions from the stock update channel.
//
// Without a Deduplicator a redelivered message is applied again. Unknown products are
// discarded because the product may have been deleted after the order was placed.
type StockUpdateConsumer struct {
	log    *slog.Logger
	svc    *Service
	dedup  Deduplicator
	tracer trace.Tracer
}

func NewStockUpdateConsumer(log *slog.Logger, svc *Service, dedup Deduplicator) *StockUpdateConsumer {
	return &StockUpdateConsumer{
		log:    log,
		svc:    svc,
		dedup:  dedup,
		tracer: otel.Tracer("inventory-consumer"),
	}
}

// Run consumes until ctx is cancelled.
func (c *StockUpdateConsumer) Run(ctx context.Context, sub stockupdate.Subscriber) error {
	c.log.Info("stock update consumer started")
	err := sub.Subscribe(ctx, c.Handle)
	c.log.Info("stock update consumer stopped")
	return err
}

// Handle applies one delivery. It returns an error only for failures worth redelivering.
func (c *StockUpdateConsumer) Handle(ctx context.Context, m stockupdate.Message) error {
	ctx, span := c.tracer.Start(ctx, "ConsumeStockUpdate", trace.WithAttributes(
		attribute.Int64("product.id", m.ProductID),
		attribute.Int("stock.delta", m.Quantity),
	))
	defer span.End()

	if m.Quantity <= 0 {
		c.log.Warn("discarding non-positive stock update", "message_id", m.ID, "product_id", m.ProductID, "quantity", m.Quantity)
		return nil
	}

	dedup := c.dedup != nil && m.ID != ""
	if dedup {
		seen, err := c.dedup.Seen(ctx, m.ID)
		if err != nil {
			c.log.Error("idempotency check failed", "message_id", m.ID, "err", err)
			return err
		}
		if seen {
			c.log.Info("duplicate stock update skipped", "message_id", m.ID, "product_id", m.ProductID)
			return nil
		}
	}

	change, err := c.svc.ApplyStockUpdate(ctx, m.ProductID, m.Quantity)
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.log.Info("stock update for unknown product discarded", "message_id", m.ID, "product_id", m.ProductID)
		return nil
	case err != nil:
		span.RecordError(err)
		if dedup {
			c.release(ctx, m.ID)
		}
		c.log.Error("stock update failed", "message_id", m.ID, "product_id", m.ProductID, "err", err)
		return err
	}

	if change.Clamped() {
		c.log.Warn("stock decrement clamped at zero",
			"message_id", m.ID, "product_id", m.ProductID, "requested", change.Requested, "before", change.Before)
	}
	c.log.Info("stock decremented", "message_id", m.ID, "product_id", m.ProductID, "before", change.Before, "after", change.After)
	return nil
}

// release drops the claim on token so the redelivery is applied. A claim left behind would
// make the redelivery look like a duplicate and the decrement would be lost.
func (c *StockUpdateConsumer) release(ctx context.Context, token string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := c.dedup.Forget(ctx, token); err != nil {
		c.log.Error("idempotency release failed, redelivery will be skipped", "message_id", token, "err", err)
	}
}
