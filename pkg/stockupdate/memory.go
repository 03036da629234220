package stockupdate

import (
	"context"
	"sync"
	"time"
)

// MemoryChannel is an in-process at-least-once channel. A delivery whose handler fails is
// queued again after RedeliveryDelay.
type MemoryChannel struct {
	RedeliveryDelay time.Duration

	mu         sync.Mutex
	queue      chan Message
	published  []Message
	publishErr error
}

func NewMemoryChannel(buffer int) *MemoryChannel {
	if buffer <= 0 {
		buffer = 64
	}
	return &MemoryChannel{RedeliveryDelay: 10 * time.Millisecond, queue: make(chan Message, buffer)}
}

func (c *MemoryChannel) Publish(ctx context.Context, m Message) error {
	c.mu.Lock()
	err := c.publishErr
	if err == nil {
		c.published = append(c.published, m)
	}
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return c.enqueue(ctx, m)
}

// Redeliver queues m again without recording a publish, the way a broker does after a lost ack.
func (c *MemoryChannel) Redeliver(ctx context.Context, m Message) error {
	return c.enqueue(ctx, m)
}

func (c *MemoryChannel) enqueue(ctx context.Context, m Message) error {
	select {
	case c.queue <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FailPublishes makes every following Publish return err; nil restores normal operation.
func (c *MemoryChannel) FailPublishes(err error) {
	c.mu.Lock()
	c.publishErr = err
	c.mu.Unlock()
}

func (c *MemoryChannel) Published() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.published))
	copy(out, c.published)
	return out
}

func (c *MemoryChannel) Close() error { return nil }

func (c *MemoryChannel) Subscribe(ctx context.Context, handler Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-c.queue:
			if err := handler(ctx, m); err != nil {
				go func() {
					select {
					case <-time.After(c.RedeliveryDelay):
						_ = c.enqueue(ctx, m)
					case <-ctx.Done():
					}
				}()
			}
		}
	}
}
