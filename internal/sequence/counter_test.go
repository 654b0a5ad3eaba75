package sequence

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	seq int64
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.seq
	return nil
}

type fakeDB struct {
	rows  []fakeRow
	calls int
}

func (f *fakeDB) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	row := f.rows[f.calls]
	f.calls++
	return row
}

func TestNextReturnsAllocatedValue(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{seq: 42}}}
	counter := NewCounter(db)

	seq, err := counter.Next(context.Background(), KeyInvoice)
	require.NoError(t, err)
	require.Equal(t, int64(42), seq)
	require.Equal(t, 1, db.calls)
}

func TestNextRetriesSerializationFailure(t *testing.T) {
	conflict := &pgconn.PgError{Code: "40001"}
	db := &fakeDB{rows: []fakeRow{{err: conflict}, {err: conflict}, {seq: 7}}}
	counter := NewCounter(db)

	seq, err := counter.Next(context.Background(), KeyQuotation)
	require.NoError(t, err)
	require.Equal(t, int64(7), seq)
	require.Equal(t, 3, db.calls)
}

func TestNextGivesUpAfterBoundedAttempts(t *testing.T) {
	conflict := &pgconn.PgError{Code: "40001"}
	db := &fakeDB{rows: []fakeRow{{err: conflict}, {err: conflict}, {err: conflict}}}
	counter := NewCounter(db)

	_, err := counter.Next(context.Background(), KeyPurchase)
	require.ErrorIs(t, err, ErrCounterAllocation)
	require.Equal(t, 3, db.calls)
}

func TestNextDoesNotRetryOtherErrors(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{err: &pgconn.PgError{Code: "23505"}}}}
	counter := NewCounter(db)

	_, err := counter.Next(context.Background(), KeyInvoice)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrCounterAllocation)
	require.Equal(t, 1, db.calls)
}
