package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

// Repository defines data access for inventory items.
type Repository interface {
	Get(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context, req ListItemsRequest) ([]Item, int, error)
	Create(ctx context.Context, item Item) (int64, error)
	Update(ctx context.Context, item Item) error
	AdjustStock(ctx context.Context, id int64, delta float64) (*Item, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the PostgreSQL-backed inventory repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const itemColumns = "id, name, measurement_kind, rate_primary, rate_secondary, stock_qty, low_stock_at, created_at, updated_at"

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Name, &it.Kind, &it.RatePrimary, &it.RateSecondary, &it.StockQty, &it.LowStockAt, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Item, error) {
	return scanItem(r.pool.QueryRow(ctx, "SELECT "+itemColumns+" FROM inventory_items WHERE id = $1", id))
}

func (r *repository) List(ctx context.Context, req ListItemsRequest) ([]Item, int, error) {
	where := "WHERE 1=1"
	var args []interface{}
	argPos := 1

	if req.Search != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argPos)
		args = append(args, "%"+req.Search+"%")
		argPos++
	}
	if req.LowOnly {
		where += " AND low_stock_at > 0 AND stock_qty <= low_stock_at"
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM inventory_items "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM inventory_items %s ORDER BY name ASC, id ASC LIMIT $%d OFFSET $%d",
		itemColumns, where, argPos, argPos+1,
	)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Kind, &it.RatePrimary, &it.RateSecondary, &it.StockQty, &it.LowStockAt, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, it)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, item Item) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO inventory_items (name, measurement_kind, rate_primary, rate_secondary, stock_qty, low_stock_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`, item.Name, item.Kind, item.RatePrimary, item.RateSecondary, item.StockQty, item.LowStockAt, time.Now()).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, item Item) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE inventory_items
		SET name = $2, rate_primary = $3, rate_secondary = $4, low_stock_at = $5, updated_at = $6
		WHERE id = $1
	`, item.ID, item.Name, item.RatePrimary, item.RateSecondary, item.LowStockAt, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) AdjustStock(ctx context.Context, id int64, delta float64) (*Item, error) {
	// Single atomic update; stock never goes below zero.
	return scanItem(r.pool.QueryRow(ctx, `
		UPDATE inventory_items
		SET stock_qty = GREATEST(stock_qty + $2, 0), updated_at = $3
		WHERE id = $1
		RETURNING `+itemColumns,
		id, delta, time.Now()))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
