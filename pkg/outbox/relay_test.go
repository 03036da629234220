package outbox

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/inventory-sales/pkg/stockupdate"
)

type memStore struct {
	pending []Event
	sent    []int64
	failed  map[int64]string
}

func (s *memStore) LockBatch(_ context.Context, _ string, batchSize int, _ time.Duration) ([]Event, error) {
	n := min(batchSize, len(s.pending))
	out := s.pending[:n]
	s.pending = s.pending[n:]
	return out, nil
}

func (s *memStore) MarkSent(_ context.Context, ids []int64) error {
	s.sent = append(s.sent, ids...)
	return nil
}

func (s *memStore) MarkFailed(_ context.Context, id int64, errMsg string) error {
	s.failed[id] = errMsg
	return nil
}

func stockEvent(t *testing.T, id int64, m stockupdate.Message) Event {
	t.Helper()
	payload, err := stockupdate.Encode(m)
	require.NoError(t, err)
	return Event{ID: id, Type: EventStockUpdate, AggregateType: "order", Payload: payload}
}

func TestRelayTickPublishesPending(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ch := stockupdate.NewMemoryChannel(8)
	m := stockupdate.Message{ID: "tok", ProductID: 3, Quantity: 2}
	store := &memStore{
		pending: []Event{stockEvent(t, 1, m), {ID: 2, Type: "Unknown"}},
		failed:  map[int64]string{},
	}

	NewRelay(log, store, NewDispatcher(log, ch), "test", time.Millisecond).Tick(context.Background())

	assert.Equal(t, []int64{1}, store.sent)
	assert.Contains(t, store.failed, int64(2))
	assert.Equal(t, []stockupdate.Message{m}, ch.Published())
}

func TestRelayTickMarksPublishFailure(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ch := stockupdate.NewMemoryChannel(8)
	ch.FailPublishes(errors.New("broker down"))
	store := &memStore{pending: []Event{stockEvent(t, 9, stockupdate.NewMessage(1, 1))}, failed: map[int64]string{}}

	NewRelay(log, store, NewDispatcher(log, ch), "test", time.Millisecond).Tick(context.Background())

	assert.Empty(t, store.sent)
	assert.Equal(t, "broker down", store.failed[9])
}
