package application

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
	"github.com/dmehra2102/inventory-sales/pkg/outbox"
	"github.com/dmehra2102/inventory-sales/pkg/stockupdate"
	"github.com/dmehra2102/inventory-sales/pkg/tracing"
)

// LogReconciler only records the divergence; an operator replays it with stock-publish.
type LogReconciler struct {
	log *slog.Logger
}

func NewLogReconciler(log *slog.Logger) *LogReconciler {
	return &LogReconciler{log: log}
}

func (r *LogReconciler) PublishFailed(_ context.Context, o domain.Order, msg stockupdate.Message, cause error) {
	r.log.Error("stock update needs manual reconciliation",
		"order_id", o.ID, "product_id", msg.ProductID, "quantity", msg.Quantity, "message_id", msg.ID, "err", cause)
}

// OutboxReconciler parks the message in the outbox so the relay can publish it later.
type OutboxReconciler struct {
	log   *slog.Logger
	store OutboxWriter
}

func NewOutboxReconciler(log *slog.Logger, store OutboxWriter) *OutboxReconciler {
	return &OutboxReconciler{log: log, store: store}
}

func (r *OutboxReconciler) PublishFailed(ctx context.Context, o domain.Order, msg stockupdate.Message, cause error) {
	payload, err := stockupdate.Encode(msg)
	if err == nil {
		err = r.store.Enqueue(ctx, outbox.Event{
			AggregateType: "order",
			AggregateID:   strconv.FormatInt(o.ID, 10),
			Type:          outbox.EventStockUpdate,
			Payload:       payload,
			Traceparent:   tracing.Traceparent(ctx),
			Status:        outbox.StatusPending,
		})
	}
	if err != nil {
		r.log.Error("stock update could not be parked in outbox, needs manual reconciliation",
			"order_id", o.ID, "product_id", msg.ProductID, "quantity", msg.Quantity, "message_id", msg.ID, "cause", cause, "err", err)
		return
	}
	r.log.Warn("stock update parked in outbox", "order_id", o.ID, "message_id", msg.ID)
}
