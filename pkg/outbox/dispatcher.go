package outbox

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmehra2102/inventory-sales/pkg/stockupdate"
	"github.com/dmehra2102/inventory-sales/pkg/tracing"
)

type Dispatcher struct {
	log       *slog.Logger
	publisher stockupdate.Publisher
}

func NewDispatcher(log *slog.Logger, publisher stockupdate.Publisher) *Dispatcher {
	return &Dispatcher{log: log, publisher: publisher}
}

func (d *Dispatcher) Dispatch(ctx context.Context, event Event) error {
	if event.Type != EventStockUpdate {
		return fmt.Errorf("outbox: unsupported event type %q", event.Type)
	}
	msg, err := stockupdate.Decode(event.Payload)
	if err != nil {
		return err
	}

	ctx = tracing.FromTraceparent(ctx, event.Traceparent)
	if err := d.publisher.Publish(ctx, msg); err != nil {
		d.log.Error("outbox dispatch failed", "event_id", event.ID, "err", err)
		return err
	}
	d.log.Info("outbox dispatched", "event_id", event.ID, "message_id", msg.ID, "product_id", msg.ProductID)
	return nil
}
