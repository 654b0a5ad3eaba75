package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dixith12/Billing-App-sub001/internal/platform/db"
	"github.com/Dixith12/Billing-App-sub001/internal/sequence"
	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

// Repository defines data access for one document variant. WithTx
// yields a repository bound to a repeatable-read transaction; payment
// application and number allocation must run inside one.
type Repository interface {
	WithTx(ctx context.Context, fn func(Repository) error) error

	NextNumber(ctx context.Context) (string, error)
	Get(ctx context.Context, id int64) (*Document, error)
	List(ctx context.Context, req ListRequest) ([]Document, int, error)
	Create(ctx context.Context, doc *Document) (int64, error)
	UpdateHeader(ctx context.Context, doc *Document) error
	ReplaceLines(ctx context.Context, docID int64, lines []Line) error
	Delete(ctx context.Context, id int64) error

	PaymentState(ctx context.Context, id int64) (paid, net float64, err error)
	ApplyPayment(ctx context.Context, id int64, paid float64) error
	InsertPayment(ctx context.Context, p Payment) (int64, error)
	ListPayments(ctx context.Context, docID int64) ([]Payment, error)

	SetStage(ctx context.Context, id int64, stage Stage) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	cfg     Config
	pool    *pgxpool.Pool
	db      dbtx
	counter *sequence.Counter
	inTx    bool
}

// NewRepository builds the PostgreSQL-backed repository for a variant.
func NewRepository(cfg Config, pool *pgxpool.Pool) Repository {
	return &repository{
		cfg:     cfg,
		pool:    pool,
		db:      pool,
		counter: sequence.NewCounter(pool),
	}
}

func (r *repository) WithTx(ctx context.Context, fn func(Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		child := &repository{cfg: r.cfg, pool: r.pool, db: tx, counter: sequence.NewCounter(tx), inTx: true}
		return fn(child)
	})
}

// NextNumber allocates the next formatted document number, for example
// INV-0007. Allocation retries internally on serialization conflicts.
func (r *repository) NextNumber(ctx context.Context) (string, error) {
	seq, err := r.counter.Next(ctx, r.cfg.CounterKey)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%04d", r.cfg.NumberPrefix, seq), nil
}

func (r *repository) partyTable() string {
	if r.cfg.Party == PartyVendor {
		return "vendors"
	}
	return "customers"
}

func (r *repository) docColumns() string {
	return "d.id, d.number, d.party_id, p.name, d.doc_date, d.subtotal, d.total_discount, d.taxable_amount, d.cgst, d.sgst, d.igst, d.net_amount, d.paid_amount, d.stage, d.notes, d.created_at, d.updated_at"
}

func (r *repository) scanDoc(row pgx.Row) (*Document, error) {
	var d Document
	var partyName *string
	err := row.Scan(
		&d.ID, &d.Number, &d.PartyID, &partyName, &d.DocDate,
		&d.Totals.Subtotal, &d.Totals.TotalDiscount, &d.Totals.TaxableAmount,
		&d.Totals.CGST, &d.Totals.SGST, &d.Totals.IGST, &d.Totals.NetAmount,
		&d.PaidAmount, &d.Stage, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	d.Kind = r.cfg.Kind
	if partyName != nil {
		d.PartyName = *partyName
	}
	return &d, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Document, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s d LEFT JOIN %s p ON p.id = d.party_id WHERE d.id = $1",
		r.docColumns(), r.cfg.Table, r.partyTable(),
	)
	doc, err := r.scanDoc(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	lines, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines
	return doc, nil
}

func (r *repository) lines(ctx context.Context, docID int64) ([]Line, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT id, item_name, measurement_kind, quantity, primary_measure, secondary_measure,
		       rate_primary, rate_secondary, has_waste, waste_primary, waste_secondary,
		       discount_kind, discount_value, gross_amount, net_amount, line_order
		FROM %s WHERE document_id = $1 ORDER BY line_order ASC, id ASC
	`, r.cfg.LinesTable), docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.ID, &l.ItemName, &l.Kind, &l.Quantity, &l.Primary, &l.Secondary,
			&l.RatePrimary, &l.RateSecondary, &l.HasWaste, &l.WastePrimary, &l.WasteSecond,
			&l.DiscountKind, &l.DiscountValue, &l.Gross, &l.Net, &l.LineOrder,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *repository) List(ctx context.Context, req ListRequest) ([]Document, int, error) {
	where := "WHERE 1=1"
	var args []any
	argPos := 1

	add := func(clause string, val any) {
		where += fmt.Sprintf(clause, argPos)
		args = append(args, val)
		argPos++
	}

	if req.PartyID > 0 {
		add(" AND d.party_id = $%d", req.PartyID)
	}
	if req.Stage != "" {
		add(" AND d.stage = $%d", req.Stage)
	}
	if req.DateFrom != nil {
		add(" AND d.doc_date >= $%d", *req.DateFrom)
	}
	if req.DateTo != nil {
		add(" AND d.doc_date <= $%d", *req.DateTo)
	}
	if req.Search != "" {
		where += fmt.Sprintf(" AND (d.number ILIKE $%d OR p.name ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+req.Search+"%")
		argPos++
	}
	switch req.Status {
	case "pending":
		where += " AND d.paid_amount <= 0"
	case "partially_paid":
		where += " AND d.paid_amount > 0 AND d.paid_amount < d.net_amount"
	case "paid":
		where += " AND d.paid_amount >= d.net_amount"
	}

	from := fmt.Sprintf("FROM %s d LEFT JOIN %s p ON p.id = d.party_id", r.cfg.Table, r.partyTable())

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) "+from+" "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s %s %s ORDER BY d.doc_date DESC, d.id DESC LIMIT $%d OFFSET $%d",
		r.docColumns(), from, where, argPos, argPos+1,
	)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := r.scanDoc(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *doc)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, doc *Document) (int64, error) {
	var id int64
	now := time.Now()
	err := r.db.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (number, party_id, doc_date, subtotal, total_discount, taxable_amount,
		                cgst, sgst, igst, net_amount, paid_amount, stage, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11, $12, $13, $13)
		RETURNING id
	`, r.cfg.Table),
		doc.Number, doc.PartyID, doc.DocDate,
		doc.Totals.Subtotal, doc.Totals.TotalDiscount, doc.Totals.TaxableAmount,
		doc.Totals.CGST, doc.Totals.SGST, doc.Totals.IGST, doc.Totals.NetAmount,
		doc.Stage, doc.Notes, now,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) UpdateHeader(ctx context.Context, doc *Document) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`
		UPDATE %s
		SET party_id = $2, doc_date = $3, subtotal = $4, total_discount = $5, taxable_amount = $6,
		    cgst = $7, sgst = $8, igst = $9, net_amount = $10, notes = $11, updated_at = $12
		WHERE id = $1
	`, r.cfg.Table),
		doc.ID, doc.PartyID, doc.DocDate,
		doc.Totals.Subtotal, doc.Totals.TotalDiscount, doc.Totals.TaxableAmount,
		doc.Totals.CGST, doc.Totals.SGST, doc.Totals.IGST, doc.Totals.NetAmount,
		doc.Notes, time.Now(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) ReplaceLines(ctx context.Context, docID int64, lines []Line) error {
	if _, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE document_id = $1", r.cfg.LinesTable), docID); err != nil {
		return err
	}
	for _, l := range lines {
		_, err := r.db.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (document_id, item_name, measurement_kind, quantity, primary_measure, secondary_measure,
			                rate_primary, rate_secondary, has_waste, waste_primary, waste_secondary,
			                discount_kind, discount_value, gross_amount, net_amount, line_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`, r.cfg.LinesTable),
			docID, l.ItemName, l.Kind, l.Quantity, l.Primary, l.Secondary,
			l.RatePrimary, l.RateSecondary, l.HasWaste, l.WastePrimary, l.WasteSecond,
			l.DiscountKind, l.DiscountValue, l.Gross, l.Net, l.LineOrder,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE document_id = $1", r.cfg.LinesTable), id); err != nil {
		return err
	}
	if r.cfg.Payments() {
		if _, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE document_id = $1", r.cfg.PaymentsTable), id); err != nil {
			return err
		}
	}
	tag, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.cfg.Table), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// PaymentState reads the current paid and net amounts with a row lock
// so concurrent payments serialize.
func (r *repository) PaymentState(ctx context.Context, id int64) (float64, float64, error) {
	var paid, net float64
	err := r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT paid_amount, net_amount FROM %s WHERE id = $1 FOR UPDATE", r.cfg.Table),
		id,
	).Scan(&paid, &net)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, shared.ErrNotFound
		}
		return 0, 0, err
	}
	return paid, net, nil
}

func (r *repository) ApplyPayment(ctx context.Context, id int64, paid float64) error {
	tag, err := r.db.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET paid_amount = $2, updated_at = $3 WHERE id = $1", r.cfg.Table),
		id, paid, time.Now(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) InsertPayment(ctx context.Context, p Payment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (document_id, reference, amount, mode, paid_at, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, r.cfg.PaymentsTable),
		p.DocumentID, p.Reference, p.Amount, p.Mode, p.PaidAt, p.Note,
	).Scan(&id)
	return id, err
}

func (r *repository) ListPayments(ctx context.Context, docID int64) ([]Payment, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT id, document_id, reference, amount, mode, paid_at, note
		FROM %s WHERE document_id = $1 ORDER BY paid_at ASC, id ASC
	`, r.cfg.PaymentsTable), docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.DocumentID, &p.Reference, &p.Amount, &p.Mode, &p.PaidAt, &p.Note); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) SetStage(ctx context.Context, id int64, stage Stage) error {
	tag, err := r.db.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET stage = $2, updated_at = $3 WHERE id = $1", r.cfg.Table),
		id, stage, time.Now(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
