package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dmehra2102/inventory-sales/internal/inventory/domain"
)

// Repository keeps products in process memory; used for local runs and tests.
type Repository struct {
	mu       sync.RWMutex
	nextID   int64
	products map[int64]domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: make(map[int64]domain.Product)}
}

func (r *Repository) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = p
	return p, nil
}

func (r *Repository) Get(_ context.Context, id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *Repository) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) Update(_ context.Context, p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *Repository) Delete(_ context.Context, id int64) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	delete(r.products, id)
	return p, nil
}

func (r *Repository) ApplyDecrement(_ context.Context, id int64, delta int) (domain.StockChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.StockChange{}, domain.ErrProductNotFound
	}
	change := domain.Decrement(id, p.StockQuantity, delta)
	p.StockQuantity = change.After
	r.products[id] = p
	return change, nil
}
