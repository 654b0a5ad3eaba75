package settings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

// Repository persists the GST settings row.
type Repository interface {
	Get(ctx context.Context) (*GSTSettings, error)
	Upsert(ctx context.Context, s GSTSettings) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the PostgreSQL-backed settings repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context) (*GSTSettings, error) {
	var s GSTSettings
	err := r.pool.QueryRow(ctx, `
		SELECT cgst_pct, sgst_pct, home_state, updated_at
		FROM gst_settings
		WHERE id = 1
	`).Scan(&s.CGSTPct, &s.SGSTPct, &s.HomeState, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) Upsert(ctx context.Context, s GSTSettings) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO gst_settings (id, cgst_pct, sgst_pct, home_state, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET cgst_pct = $1, sgst_pct = $2, home_state = $3, updated_at = $4
	`, s.CGSTPct, s.SGSTPct, s.HomeState, time.Now())
	return err
}
