package insights

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the aggregate queries behind the dashboard.
type Repository interface {
	Summary(ctx context.Context) (Summary, error)
	MonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenuePoint, error)
	TopCustomers(ctx context.Context, limit int) ([]TopCustomer, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the PostgreSQL-backed insights repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT SUM(net_amount) FROM invoices), 0),
			COALESCE((SELECT SUM(GREATEST(net_amount - paid_amount, 0)) FROM invoices), 0),
			COALESCE((SELECT SUM(GREATEST(net_amount - paid_amount, 0)) FROM purchases), 0),
			COALESCE((SELECT SUM(amount) FROM expenses WHERE expense_date >= date_trunc('month', NOW())), 0),
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM quotations),
			(SELECT COUNT(*) FROM purchases),
			(SELECT COUNT(*) FROM customers)
	`).Scan(
		&s.TotalRevenue,
		&s.OutstandingReceivable,
		&s.OutstandingPayable,
		&s.ExpensesThisMonth,
		&s.InvoiceCount,
		&s.QuotationCount,
		&s.PurchaseCount,
		&s.CustomerCount,
	)
	return s, err
}

func (r *repository) MonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenuePoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('month', doc_date) AS month,
		       COALESCE(SUM(net_amount), 0),
		       COALESCE(SUM(LEAST(paid_amount, net_amount)), 0)
		FROM invoices
		WHERE doc_date >= date_trunc('month', NOW()) - ($1 || ' months')::interval
		GROUP BY month
		ORDER BY month ASC
	`, months-1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyRevenuePoint
	for rows.Next() {
		var p MonthlyRevenuePoint
		if err := rows.Scan(&p.Month, &p.Invoiced, &p.Collected); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) TopCustomers(ctx context.Context, limit int) ([]TopCustomer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.name,
		       COALESCE(SUM(i.net_amount), 0) AS billed,
		       COALESCE(SUM(LEAST(i.paid_amount, i.net_amount)), 0) AS paid
		FROM customers c
		JOIN invoices i ON i.party_id = c.id
		GROUP BY c.id, c.name
		ORDER BY billed DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TopCustomer
	for rows.Next() {
		var tc TopCustomer
		if err := rows.Scan(&tc.CustomerID, &tc.Name, &tc.Billed, &tc.Paid); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
