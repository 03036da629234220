package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/inventory-sales/internal/inventory/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{
		log:  log,
		pool: pool,
	}
}

// EnsureSchema creates the products table when it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(18,2) NOT NULL CHECK (price > 0),
		stock_quantity INTEGER NOT NULL CHECK (stock_quantity >= 0)
	)`)
	return err
}

func (r *Repository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	err := r.pool.QueryRow(ctx, `INSERT INTO products (name, description, price, stock_quantity)
		VALUES ($1,$2,$3,$4) RETURNING id`,
		p.Name, p.Description, p.Price, p.StockQuantity).Scan(&p.ID)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `SELECT id, name, description, price, stock_quantity FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, err
}

func (r *Repository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, price, stock_quantity FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *Repository) Update(ctx context.Context, p domain.Product) error {
	ct, err := r.pool.Exec(ctx, `UPDATE products SET name=$2, description=$3, price=$4, stock_quantity=$5 WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Price, p.StockQuantity)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `DELETE FROM products WHERE id=$1 RETURNING id, name, description, price, stock_quantity`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, err
}

func (r *Repository) ApplyDecrement(ctx context.Context, id int64, delta int) (domain.StockChange, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.StockChange{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var stock int
	err = tx.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id=$1 FOR UPDATE`, id).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StockChange{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.StockChange{}, err
	}

	change := domain.Decrement(id, stock, delta)
	if _, err = tx.Exec(ctx, `UPDATE products SET stock_quantity=$2 WHERE id=$1`, id, change.After); err != nil {
		return domain.StockChange{}, err
	}
	if err = tx.Commit(ctx); err != nil {
		return domain.StockChange{}, err
	}
	return change, nil
}
