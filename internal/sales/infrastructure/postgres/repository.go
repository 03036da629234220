package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// EnsureSchema creates the orders and outbox tables when they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			product_id BIGINT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			total_price NUMERIC(18,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			status TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS outbox (
			id BIGSERIAL PRIMARY KEY,
			aggregate_type TEXT NOT NULL,
			aggregate_id TEXT NOT NULL,
			type TEXT NOT NULL,
			payload BYTEA NOT NULL,
			traceparent TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			status TEXT NOT NULL DEFAULT 'pending',
			relay_id TEXT NOT NULL DEFAULT '',
			lease_until TIMESTAMPTZ,
			retry_count INTEGER NOT NULL DEFAULT 0,
			last_error TEXT
		);
		CREATE INDEX IF NOT EXISTS outbox_status_idx ON outbox (status, id);
	`)
	return err
}

func (r *Repository) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO orders (product_id, quantity, total_price, created_at, status)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		o.ProductID, o.Quantity, o.TotalPrice, o.CreatedAt, string(o.Status)).Scan(&o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (domain.Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, product_id, quantity, total_price, created_at, status FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, err
}

func (r *Repository) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, product_id, quantity, total_price, created_at, status FROM orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	ct, err := r.pool.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, id, string(status))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	if err := row.Scan(&o.ID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.CreatedAt, &status); err != nil {
		return domain.Order{}, err
	}
	o.Status = domain.OrderStatus(status)
	o.CreatedAt = o.CreatedAt.UTC()
	return o, nil
}
