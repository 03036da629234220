package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/inventory-sales/pkg/outbox"
)

// OutboxStore holds stock updates whose first publish failed. A failed relay attempt puts the
// row back to pending until maxRetries is reached, after which it stays failed for an operator.
type OutboxStore struct {
	log        *slog.Logger
	pool       *pgxpool.Pool
	maxRetries int
}

func NewOutboxStore(log *slog.Logger, pool *pgxpool.Pool, maxRetries int) *OutboxStore {
	if maxRetries <= 0 {
		maxRetries = 10
	}
	return &OutboxStore{log: log, pool: pool, maxRetries: maxRetries}
}

func (s *OutboxStore) Enqueue(ctx context.Context, e outbox.Event) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent, status)
		VALUES ($1,$2,$3,$4,$5,'pending')`,
		e.AggregateType, e.AggregateID, e.Type, e.Payload, e.Traceparent)
	return err
}

// LockBatch claims pending rows plus in-progress rows whose lease ran out, so a relay that
// died mid-batch does not strand its events.
func (s *OutboxStore) LockBatch(ctx context.Context, relayID string, batchSize int, lease time.Duration) ([]outbox.Event, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	rows, err := tx.Query(ctx, `
		SELECT id, aggregate_type, aggregate_id, type, payload, traceparent, created_at, retry_count
		FROM outbox
		WHERE status = 'pending' OR (status = 'in_progress' AND lease_until < now())
		ORDER BY id
		FOR UPDATE SKIP LOCKED
		LIMIT $1
	`, batchSize)
	if err != nil {
		return nil, err
	}

	var events []outbox.Event
	for rows.Next() {
		var e outbox.Event
		if err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.Type, &e.Payload, &e.Traceparent, &e.CreatedAt, &e.RetryCount); err != nil {
			rows.Close()
			return nil, err
		}
		e.Status = outbox.StatusInProgress
		e.RelayID = relayID
		events = append(events, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, tx.Commit(ctx)
	}

	ids := make([]int64, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	_, err = tx.Exec(ctx, `UPDATE outbox SET status='in_progress', relay_id=$1, lease_until=now() + make_interval(secs => $2)
		WHERE id = ANY($3)`, relayID, lease.Seconds(), ids)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *OutboxStore) MarkSent(ctx context.Context, ids []int64) error {
	ct, err := s.pool.Exec(ctx, `UPDATE outbox SET status='sent', lease_until=NULL WHERE id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.New("no rows updated")
	}
	return nil
}

func (s *OutboxStore) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	var status string
	err := s.pool.QueryRow(ctx, `UPDATE outbox
		SET retry_count = retry_count + 1,
			last_error = $2,
			lease_until = NULL,
			status = CASE WHEN retry_count + 1 >= $3 THEN 'failed' ELSE 'pending' END
		WHERE id=$1
		RETURNING status`, id, errMsg, s.maxRetries).Scan(&status)
	if err != nil {
		return err
	}
	if outbox.Status(status) == outbox.StatusFailed {
		s.log.Error("outbox event gave up, needs manual reconciliation", "event_id", id, "err", errMsg)
	}
	return nil
}
