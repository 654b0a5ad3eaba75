package insights

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	summaryCalls int
	revenueCalls int
	topCalls     int
	lastMonths   int
}

func (r *countingRepo) Summary(ctx context.Context) (Summary, error) {
	r.summaryCalls++
	return Summary{
		TotalRevenue:          573.48,
		OutstandingReceivable: 273.48,
		InvoiceCount:          2,
	}, nil
}

func (r *countingRepo) MonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenuePoint, error) {
	r.revenueCalls++
	r.lastMonths = months
	return []MonthlyRevenuePoint{{
		Month:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Invoiced: 573.48,
	}}, nil
}

func (r *countingRepo) TopCustomers(ctx context.Context, limit int) ([]TopCustomer, error) {
	r.topCalls++
	return []TopCustomer{{CustomerID: 1, Name: "Acme Glass", Billed: 573.48}}, nil
}

func newTestService(t *testing.T) (*Service, *countingRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &countingRepo{}
	return NewService(repo, NewCache(client, time.Minute)), repo
}

func TestSummaryIsCached(t *testing.T) {
	svc, repo := newTestService(t)

	first, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 573.48, first.TotalRevenue)
	require.NotEmpty(t, first.TotalRevenueDisplay)

	second, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, repo.summaryCalls)
}

func TestInvalidateForcesReload(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(context.Background()))

	_, err = svc.GetSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, repo.summaryCalls)
}

func TestMonthlyRevenueClampsWindow(t *testing.T) {
	svc, repo := newTestService(t)

	points, err := svc.GetMonthlyRevenue(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, 6, repo.lastMonths)
}

func TestWarmPopulatesAllViews(t *testing.T) {
	svc, repo := newTestService(t)

	require.NoError(t, svc.Warm(context.Background()))
	require.Equal(t, 1, repo.summaryCalls)
	require.Equal(t, 1, repo.revenueCalls)
	require.Equal(t, 1, repo.topCalls)

	// Warm results are served from cache afterwards.
	_, err := svc.GetTopCustomers(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 1, repo.topCalls)
}
