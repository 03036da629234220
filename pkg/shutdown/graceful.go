package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func WithSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// Hook releases one resource on shutdown.
type Hook struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Run executes hooks in reverse registration order under a shared deadline.
func Run(log *slog.Logger, timeout time.Duration, hooks ...Hook) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs error
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.Fn(ctx); err != nil {
			log.Error("shutdown hook failed", "hook", h.Name, "err", err)
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
