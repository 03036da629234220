package application

import (
	"context"
	"fmt"

	"github.com/dmehra2102/inventory-sales/internal/sales/domain"
)

// Service covers the administrative order operations; placing orders goes through Coordinator.
type Service struct {
	repo OrderRepository
}

func NewService(repo OrderRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// UpdateStatus edits the status in place. It never touches stock.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
