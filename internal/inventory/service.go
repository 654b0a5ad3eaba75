package inventory

import (
	"context"
	"fmt"

	"github.com/Dixith12/Billing-App-sub001/internal/pricing"
	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

// Service handles inventory business logic.
type Service struct {
	repo Repository
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*Item, error) {
	id, err := s.repo.Create(ctx, Item{
		Name:          req.Name,
		Kind:          pricing.MeasurementKind(req.Kind),
		RatePrimary:   req.RatePrimary,
		RateSecondary: req.RateSecondary,
		StockQty:      req.StockQty,
		LowStockAt:    req.LowStockAt,
	})
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateItemRequest) (*Item, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.RatePrimary != nil {
		existing.RatePrimary = *req.RatePrimary
	}
	if req.RateSecondary != nil {
		existing.RateSecondary = *req.RateSecondary
	}
	if req.LowStockAt != nil {
		existing.LowStockAt = *req.LowStockAt
	}

	if err := s.repo.Update(ctx, *existing); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// AdjustStock applies a signed stock delta, flooring at zero.
func (s *Service) AdjustStock(ctx context.Context, id int64, delta float64) (*Item, error) {
	item, err := s.repo.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListItemsRequest) ([]Item, shared.Pagination, error) {
	if req.Limit <= 0 || req.Limit > 200 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	items, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return items, shared.NewPagination(req.Offset/req.Limit+1, req.Limit, total), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
