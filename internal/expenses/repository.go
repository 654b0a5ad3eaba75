package expenses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

// Repository defines data access for expenses.
type Repository interface {
	Get(ctx context.Context, id int64) (*Expense, error)
	List(ctx context.Context, req ListExpensesRequest) ([]Expense, int, error)
	Create(ctx context.Context, e Expense) (int64, error)
	Update(ctx context.Context, e Expense) error
	Delete(ctx context.Context, id int64) error
	MonthlyTotals(ctx context.Context, months int) ([]MonthlyTotal, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the PostgreSQL-backed expense repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const expenseColumns = "id, category, amount, expense_date, note, created_at, updated_at"

func scanExpense(row pgx.Row) (*Expense, error) {
	var e Expense
	err := row.Scan(&e.ID, &e.Category, &e.Amount, &e.ExpenseDate, &e.Note, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Expense, error) {
	return scanExpense(r.pool.QueryRow(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = $1", id))
}

func (r *repository) List(ctx context.Context, req ListExpensesRequest) ([]Expense, int, error) {
	where := "WHERE 1=1"
	var args []interface{}
	argPos := 1

	if req.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, req.Category)
		argPos++
	}
	if req.DateFrom != nil {
		where += fmt.Sprintf(" AND expense_date >= $%d", argPos)
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		where += fmt.Sprintf(" AND expense_date <= $%d", argPos)
		args = append(args, *req.DateTo)
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM expenses "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM expenses %s ORDER BY expense_date DESC, id DESC LIMIT $%d OFFSET $%d",
		expenseColumns, where, argPos, argPos+1,
	)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.ExpenseDate, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, e Expense) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (category, amount, expense_date, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`, e.Category, e.Amount, e.ExpenseDate, e.Note, time.Now()).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, e Expense) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE expenses
		SET category = $2, amount = $3, expense_date = $4, note = $5, updated_at = $6
		WHERE id = $1
	`, e.ID, e.Category, e.Amount, e.ExpenseDate, e.Note, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) MonthlyTotals(ctx context.Context, months int) ([]MonthlyTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('month', expense_date) AS month, COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE expense_date >= date_trunc('month', NOW()) - ($1 || ' months')::interval
		GROUP BY month
		ORDER BY month DESC
	`, months-1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyTotal
	for rows.Next() {
		var mt MonthlyTotal
		if err := rows.Scan(&mt.Month, &mt.Total); err != nil {
			return nil, err
		}
		out = append(out, mt)
	}
	return out, rows.Err()
}
