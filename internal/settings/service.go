package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dixith12/Billing-App-sub001/internal/pricing"
	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

// Service exposes GST settings reads and updates.
type Service struct {
	repo Repository
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored settings, or zero-rate defaults before the
// business has configured anything.
func (s *Service) Get(ctx context.Context) (GSTSettings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return GSTSettings{}, nil
		}
		return GSTSettings{}, fmt.Errorf("get gst settings: %w", err)
	}
	return *stored, nil
}

// Update validates and persists new settings.
func (s *Service) Update(ctx context.Context, in GSTSettings) (GSTSettings, error) {
	if in.CGSTPct < 0 || in.SGSTPct < 0 {
		return GSTSettings{}, errors.New("tax percentages must not be negative")
	}
	if in.CGSTPct > 100 || in.SGSTPct > 100 {
		return GSTSettings{}, errors.New("tax percentages must not exceed 100")
	}
	if err := s.repo.Upsert(ctx, in); err != nil {
		return GSTSettings{}, fmt.Errorf("upsert gst settings: %w", err)
	}
	return s.Get(ctx)
}

// TaxConfig snapshots the settings into the immutable config the pricing
// engine consumes. Loaded once per computation, never mid-calculation.
func (s *Service) TaxConfig(ctx context.Context) (pricing.TaxConfig, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return pricing.TaxConfig{}, err
	}
	return pricing.TaxConfig{
		CGSTPct:   settings.CGSTPct,
		SGSTPct:   settings.SGSTPct,
		HomeState: settings.HomeState,
	}, nil
}
