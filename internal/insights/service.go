package insights

import (
	"context"
	"encoding/json"
	"strconv"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Service coordinates dashboard query execution with the cache layer.
// Concurrent cache misses for the same key collapse into one query.
type Service struct {
	repo    Repository
	cache   *Cache
	group   singleflight.Group
	printer *message.Printer
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		printer: message.NewPrinter(language.MustParse("en-IN")),
	}
}

func (s *Service) fetch(ctx context.Context, keyBase string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	key, err := s.cache.BuildKey(ctx, keyBase)
	if err != nil {
		return err
	}
	raw, err, _ := s.group.Do(key, func() (interface{}, error) {
		var payload json.RawMessage
		if err := s.cache.FetchJSON(ctx, key, &payload, loader); err != nil {
			return nil, err
		}
		return payload, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(raw.(json.RawMessage), dest)
}

// GetSummary resolves the headline dashboard card.
func (s *Service) GetSummary(ctx context.Context) (Summary, error) {
	var summary Summary
	err := s.fetch(ctx, "insights:summary", &summary, func(ctx context.Context) (interface{}, error) {
		loaded, err := s.repo.Summary(ctx)
		if err != nil {
			return Summary{}, err
		}
		loaded.TotalRevenueDisplay = s.printer.Sprintf("%.2f", loaded.TotalRevenue)
		return loaded, nil
	})
	return summary, err
}

// GetMonthlyRevenue resolves the invoiced/collected trend for the
// trailing window.
func (s *Service) GetMonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenuePoint, error) {
	if months <= 0 || months > 36 {
		months = 6
	}
	var points []MonthlyRevenuePoint
	err := s.fetch(ctx, "insights:revenue:"+strconv.Itoa(months), &points, func(ctx context.Context) (interface{}, error) {
		return s.repo.MonthlyRevenue(ctx, months)
	})
	return points, err
}

// GetTopCustomers resolves the billed-value customer ranking.
func (s *Service) GetTopCustomers(ctx context.Context, limit int) ([]TopCustomer, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	var out []TopCustomer
	err := s.fetch(ctx, "insights:top_customers:"+strconv.Itoa(limit), &out, func(ctx context.Context) (interface{}, error) {
		return s.repo.TopCustomers(ctx, limit)
	})
	return out, err
}

// Invalidate bumps the cache version after billing writes.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

// Warm precomputes the default dashboard views into cache.
func (s *Service) Warm(ctx context.Context) error {
	if _, err := s.GetSummary(ctx); err != nil {
		return err
	}
	if _, err := s.GetMonthlyRevenue(ctx, 6); err != nil {
		return err
	}
	_, err := s.GetTopCustomers(ctx, 5)
	return err
}
