package vendors

import (
	"context"
	"fmt"

	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

// Service handles vendor business logic.
type Service struct {
	repo Repository
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateVendorRequest) (*Vendor, error) {
	id, err := s.repo.Create(ctx, Vendor{
		Name:    req.Name,
		Phone:   req.Phone,
		GSTIN:   req.GSTIN,
		State:   req.State,
		Address: req.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("create vendor: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateVendorRequest) (*Vendor, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.GSTIN != nil {
		existing.GSTIN = req.GSTIN
	}
	if req.State != nil {
		existing.State = *req.State
	}
	if req.Address != nil {
		existing.Address = req.Address
	}

	if err := s.repo.Update(ctx, *existing); err != nil {
		return nil, fmt.Errorf("update vendor: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Vendor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListVendorsRequest) ([]Vendor, shared.Pagination, error) {
	if req.Limit <= 0 || req.Limit > 200 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	list, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return list, shared.NewPagination(req.Offset/req.Limit+1, req.Limit, total), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
