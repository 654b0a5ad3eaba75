// Package sequence allocates document numbers from durable keyed
// counters. Counters are incremented by a single atomic upsert so
// concurrent creations across instances can never observe the same value.
package sequence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Key identifies one durable counter.
type Key string

const (
	KeyInvoice   Key = "invoiceNumber"
	KeyQuotation Key = "quotationNumber"
	KeyPurchase  Key = "purchaseNumber"
)

// ErrCounterAllocation surfaces after retries against counter contention
// are exhausted.
var ErrCounterAllocation = errors.New("counter allocation failed")

const maxAttempts = 3

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Counter hands out strictly increasing integers per key.
type Counter struct {
	db dbtx
}

// NewCounter builds a Counter on top of a pool or transaction.
func NewCounter(db dbtx) *Counter {
	return &Counter{db: db}
}

// Next increments and returns the counter for key. Serialization
// conflicts are retried up to three times before ErrCounterAllocation is
// returned.
func (c *Counter) Next(ctx context.Context, key Key) (int64, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var seq int64
		err := c.db.QueryRow(ctx, `
			INSERT INTO document_sequences (counter_key, seq)
			VALUES ($1, 1)
			ON CONFLICT (counter_key)
			DO UPDATE SET seq = document_sequences.seq + 1
			RETURNING seq
		`, string(key)).Scan(&seq)
		if err == nil {
			return seq, nil
		}
		if !isSerializationFailure(err) {
			return 0, fmt.Errorf("sequence: next %s: %w", key, err)
		}
		lastErr = err
	}
	return 0, fmt.Errorf("%w: %s: %v", ErrCounterAllocation, key, lastErr)
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 40001 serialization_failure, 40P01 deadlock_detected.
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
