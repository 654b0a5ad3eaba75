package expenses

import (
	"context"
	"fmt"
	"time"

	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

// CacheInvalidator is notified after expense writes so cached insight
// views rebuild on their next read.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service handles expense business logic.
type Service struct {
	repo  Repository
	cache CacheInvalidator
}

// NewService builds Service instance. cache may be nil.
func NewService(repo Repository, cache CacheInvalidator) *Service {
	return &Service{repo: repo, cache: cache}
}

// invalidate bumps the insights cache after a write. Best effort.
func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx)
}

func (s *Service) Create(ctx context.Context, req CreateExpenseRequest) (*Expense, error) {
	e := Expense{
		Category:    req.Category,
		Amount:      req.Amount,
		ExpenseDate: time.Now(),
		Note:        req.Note,
	}
	if req.ExpenseDate != nil {
		e.ExpenseDate = *req.ExpenseDate
	}
	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	s.invalidate(ctx)
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateExpenseRequest) (*Expense, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}

	if req.Category != nil {
		existing.Category = *req.Category
	}
	if req.Amount != nil {
		existing.Amount = *req.Amount
	}
	if req.ExpenseDate != nil {
		existing.ExpenseDate = *req.ExpenseDate
	}
	if req.Note != nil {
		existing.Note = req.Note
	}

	if err := s.repo.Update(ctx, *existing); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	s.invalidate(ctx)
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListExpensesRequest) ([]Expense, shared.Pagination, error) {
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
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// MonthlyTotals returns per-month spend for the trailing window.
func (s *Service) MonthlyTotals(ctx context.Context, months int) ([]MonthlyTotal, error) {
	if months <= 0 || months > 36 {
		months = 6
	}
	return s.repo.MonthlyTotals(ctx, months)
}
