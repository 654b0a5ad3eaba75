package vendors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

// Repository defines data access for vendors.
type Repository interface {
	Get(ctx context.Context, id int64) (*Vendor, error)
	List(ctx context.Context, req ListVendorsRequest) ([]Vendor, int, error)
	Create(ctx context.Context, v Vendor) (int64, error)
	Update(ctx context.Context, v Vendor) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the PostgreSQL-backed vendor repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (*Vendor, error) {
	var v Vendor
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, phone, gstin, state, address, created_at, updated_at
		FROM vendors
		WHERE id = $1
	`, id).Scan(&v.ID, &v.Name, &v.Phone, &v.GSTIN, &v.State, &v.Address, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *repository) List(ctx context.Context, req ListVendorsRequest) ([]Vendor, int, error) {
	where := "WHERE 1=1"
	var args []interface{}
	argPos := 1

	if req.Search != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argPos)
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM vendors "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, phone, gstin, state, address, created_at, updated_at
		FROM vendors
		%s
		ORDER BY name ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Vendor
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Phone, &v.GSTIN, &v.State, &v.Address, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, v Vendor) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO vendors (name, phone, gstin, state, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`, v.Name, v.Phone, v.GSTIN, v.State, v.Address, time.Now()).Scan(&id)
	if err != nil {
		if shared.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: gstin", shared.ErrDuplicate)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, v Vendor) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE vendors
		SET name = $2, phone = $3, gstin = $4, state = $5, address = $6, updated_at = $7
		WHERE id = $1
	`, v.ID, v.Name, v.Phone, v.GSTIN, v.State, v.Address, time.Now())
	if err != nil {
		if shared.IsUniqueViolation(err) {
			return fmt.Errorf("%w: gstin", shared.ErrDuplicate)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
