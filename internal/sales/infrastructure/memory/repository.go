package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
)

// Repository is the in-process Order Store used by tests and STORE_DRIVER=memory.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]domain.Order
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{orders: make(map[int64]domain.Order)}
}

func (r *Repository) Create(_ context.Context, o domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	o.ID = r.nextID
	r.orders[o.ID] = o
	return o, nil
}

func (r *Repository) Get(_ context.Context, id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

func (r *Repository) List(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	r.orders[id] = o
	return nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}
