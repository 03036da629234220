package application

import (
	"context"
	"fmt"

	"github.com/dmehra2102/inventory-sales/internal/inventory/domain"
)

type Service struct {
	repo ProductRepository
}

func NewService(repo ProductRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	p.ID = 0
	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) (domain.Product, error) {
	return s.repo.Delete(ctx, id)
}

// GetStock is the read behind the Stock Query Interface: current price and stock, no locks.
func (s *Service) GetStock(ctx context.Context, id int64) (domain.Product, error) {
	return s.repo.Get(ctx, id)
}

// ApplyStockUpdate subtracts quantity from the product's stock, flooring at zero.
func (s *Service) ApplyStockUpdate(ctx context.Context, productID int64, quantity int) (domain.StockChange, error) {
	if quantity <= 0 {
		return domain.StockChange{}, fmt.Errorf("%w: decrement must be positive, got %d", domain.ErrInvalidProduct, quantity)
	}
	return s.repo.ApplyDecrement(ctx, productID, quantity)
}
