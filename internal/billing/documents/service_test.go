package documents

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dixith12/Billing-App-sub001/internal/pricing"
	"github.com/Dixith12/Billing-App-sub001/internal/sequence"
	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

type memoryRepo struct {
	cfg           Config
	seq           int64
	nextID        int64
	nextPaymentID int64
	docs          map[int64]*Document
	lines         map[int64][]Line
	payments      map[int64][]Payment
}

func newMemoryRepo(cfg Config) *memoryRepo {
	return &memoryRepo{
		cfg:      cfg,
		docs:     make(map[int64]*Document),
		lines:    make(map[int64][]Line),
		payments: make(map[int64][]Payment),
	}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *memoryRepo) NextNumber(ctx context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("%s-%04d", r.cfg.NumberPrefix, r.seq), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *doc
	copied.Lines = append([]Line(nil), r.lines[id]...)
	return &copied, nil
}

func (r *memoryRepo) List(ctx context.Context, req ListRequest) ([]Document, int, error) {
	var out []Document
	for id := range r.docs {
		doc, _ := r.Get(ctx, id)
		out = append(out, *doc)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Create(ctx context.Context, doc *Document) (int64, error) {
	r.nextID++
	copied := *doc
	copied.ID = r.nextID
	r.docs[copied.ID] = &copied
	return copied.ID, nil
}

func (r *memoryRepo) UpdateHeader(ctx context.Context, doc *Document) error {
	stored, ok := r.docs[doc.ID]
	if !ok {
		return shared.ErrNotFound
	}
	paid := stored.PaidAmount
	copied := *doc
	copied.PaidAmount = paid
	r.docs[doc.ID] = &copied
	return nil
}

func (r *memoryRepo) ReplaceLines(ctx context.Context, docID int64, lines []Line) error {
	r.lines[docID] = append([]Line(nil), lines...)
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.docs[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.docs, id)
	delete(r.lines, id)
	delete(r.payments, id)
	return nil
}

func (r *memoryRepo) PaymentState(ctx context.Context, id int64) (float64, float64, error) {
	doc, ok := r.docs[id]
	if !ok {
		return 0, 0, shared.ErrNotFound
	}
	return doc.PaidAmount, doc.Totals.NetAmount, nil
}

func (r *memoryRepo) ApplyPayment(ctx context.Context, id int64, paid float64) error {
	doc, ok := r.docs[id]
	if !ok {
		return shared.ErrNotFound
	}
	doc.PaidAmount = paid
	return nil
}

func (r *memoryRepo) InsertPayment(ctx context.Context, p Payment) (int64, error) {
	r.nextPaymentID++
	p.ID = r.nextPaymentID
	r.payments[p.DocumentID] = append(r.payments[p.DocumentID], p)
	return p.ID, nil
}

func (r *memoryRepo) ListPayments(ctx context.Context, docID int64) ([]Payment, error) {
	return append([]Payment(nil), r.payments[docID]...), nil
}

func (r *memoryRepo) SetStage(ctx context.Context, id int64, stage Stage) error {
	doc, ok := r.docs[id]
	if !ok {
		return shared.ErrNotFound
	}
	doc.Stage = &stage
	return nil
}

type staticTax struct{ cfg pricing.TaxConfig }

func (t staticTax) TaxConfig(ctx context.Context) (pricing.TaxConfig, error) {
	return t.cfg, nil
}

func invoiceConfig() Config {
	return Config{
		Kind:          KindInvoice,
		Table:         "invoices",
		LinesTable:    "invoice_lines",
		PaymentsTable: "invoice_payments",
		CounterKey:    sequence.KeyInvoice,
		NumberPrefix:  "INV",
		Party:         PartyCustomer,
	}
}

func quotationConfig() Config {
	return Config{
		Kind:         KindQuotation,
		Table:        "quotations",
		LinesTable:   "quotation_lines",
		CounterKey:   sequence.KeyQuotation,
		NumberPrefix: "QUO",
		Party:        PartyCustomer,
	}
}

func newTestService(cfg Config, homeState, partyState string) (*Service, *memoryRepo) {
	repo := newMemoryRepo(cfg)
	tax := staticTax{cfg: pricing.TaxConfig{CGSTPct: 9, SGSTPct: 9, HomeState: homeState}}
	parties := PartyDirectoryFunc(func(ctx context.Context, id int64) (string, error) {
		return partyState, nil
	})
	return NewService(cfg, repo, tax, parties, nil, nil), repo
}

func sampleCreate() CreateRequest {
	return CreateRequest{
		PartyID: 1,
		Lines: []LineInput{{
			ItemName:      "Glass Panel",
			Kind:          "height_width",
			Primary:       3,
			Secondary:     2,
			RatePrimary:   100,
			RateSecondary: 120,
			DiscountKind:  "percentage",
			DiscountValue: 10,
		}},
	}
}

func TestCreateComputesTotalsSameState(t *testing.T) {
	svc, _ := newTestService(invoiceConfig(), "Karnataka", "Karnataka")

	doc, err := svc.Create(context.Background(), sampleCreate())
	require.NoError(t, err)

	require.Equal(t, "INV-0001", doc.Number)
	require.Equal(t, 540.0, doc.Totals.Subtotal)
	require.Equal(t, 54.0, doc.Totals.TotalDiscount)
	require.Equal(t, 486.0, doc.Totals.TaxableAmount)
	require.Equal(t, 43.74, doc.Totals.CGST)
	require.Equal(t, 43.74, doc.Totals.SGST)
	require.Equal(t, 0.0, doc.Totals.IGST)
	require.Equal(t, 573.48, doc.Totals.NetAmount)
	require.Equal(t, pricing.StatusPending, doc.Status)
	require.Len(t, doc.Lines, 1)
	require.Equal(t, 540.0, doc.Lines[0].Gross)
	require.Equal(t, 486.0, doc.Lines[0].Net)
}

func TestCreateCrossStateUsesIGST(t *testing.T) {
	svc, _ := newTestService(invoiceConfig(), "Karnataka", "Kerala")

	doc, err := svc.Create(context.Background(), sampleCreate())
	require.NoError(t, err)

	require.Equal(t, 0.0, doc.Totals.CGST)
	require.Equal(t, 0.0, doc.Totals.SGST)
	require.Equal(t, 87.48, doc.Totals.IGST)
	require.Equal(t, 573.48, doc.Totals.NetAmount)
}

func TestCreateMissingPartyStateComputesUntaxed(t *testing.T) {
	svc, _ := newTestService(invoiceConfig(), "Karnataka", "")

	doc, err := svc.Create(context.Background(), sampleCreate())
	require.NoError(t, err)

	require.Equal(t, 0.0, doc.Totals.CGST)
	require.Equal(t, 0.0, doc.Totals.SGST)
	require.Equal(t, 0.0, doc.Totals.IGST)
	require.Equal(t, 486.0, doc.Totals.NetAmount)
}

func TestUpdateRecomputationIsIdempotent(t *testing.T) {
	svc, _ := newTestService(invoiceConfig(), "Karnataka", "Karnataka")

	doc, err := svc.Create(context.Background(), sampleCreate())
	require.NoError(t, err)

	// An update that changes nothing must yield identical totals.
	updated, err := svc.Update(context.Background(), doc.ID, UpdateRequest{})
	require.NoError(t, err)
	require.Equal(t, doc.Totals, updated.Totals)
}

func TestNumbersAreSequentialPerVariant(t *testing.T) {
	svc, _ := newTestService(invoiceConfig(), "Karnataka", "Karnataka")

	first, err := svc.Create(context.Background(), sampleCreate())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), sampleCreate())
	require.NoError(t, err)

	require.Equal(t, "INV-0001", first.Number)
	require.Equal(t, "INV-0002", second.Number)
}

func TestRecordPaymentPartialThenFull(t *testing.T) {
	svc, repo := newTestService(invoiceConfig(), "Karnataka", "Karnataka")

	doc, err := svc.Create(context.Background(), sampleCreate())
	require.NoError(t, err)

	doc, result, err := svc.RecordPayment(context.Background(), doc.ID, RecordPaymentRequest{Amount: 300})
	require.NoError(t, err)
	require.Equal(t, pricing.StatusPartiallyPaid, result.Status)
	require.Equal(t, 300.0, doc.PaidAmount)
	require.Equal(t, 273.48, doc.PendingAmount)

	doc, result, err = svc.RecordPayment(context.Background(), doc.ID, RecordPaymentRequest{Amount: 273.48})
	require.NoError(t, err)
	require.Equal(t, pricing.StatusPaid, result.Status)
	require.Equal(t, 0.0, doc.PendingAmount)

	payments, err := svc.ListPayments(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	require.NotEmpty(t, payments[0].Reference)
	require.Len(t, repo.payments[doc.ID], 2)
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newTestService(invoiceConfig(), "Karnataka", "Karnataka")

	doc, err := svc.Create(context.Background(), sampleCreate())
	require.NoError(t, err)

	_, _, err = svc.RecordPayment(context.Background(), doc.ID, RecordPaymentRequest{Amount: 0})
	require.ErrorIs(t, err, pricing.ErrInvalidPaymentAmount)

	// A rejected payment must not change the stored figure.
	reloaded, err := svc.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, reloaded.PaidAmount)
}

func TestQuotationRejectsPayments(t *testing.T) {
	svc, _ := newTestService(quotationConfig(), "Karnataka", "Karnataka")

	doc, err := svc.Create(context.Background(), sampleCreate())
	require.NoError(t, err)
	require.NotNil(t, doc.Stage)
	require.Equal(t, StageDraft, *doc.Stage)

	_, _, err = svc.RecordPayment(context.Background(), doc.ID, RecordPaymentRequest{Amount: 100})
	require.ErrorIs(t, err, ErrPaymentsUnsupported)
}

func TestQuotationStageTransition(t *testing.T) {
	svc, _ := newTestService(quotationConfig(), "Karnataka", "Karnataka")

	doc, err := svc.Create(context.Background(), sampleCreate())
	require.NoError(t, err)

	doc, err = svc.SetStage(context.Background(), doc.ID, StageSent)
	require.NoError(t, err)
	require.Equal(t, StageSent, *doc.Stage)
}

func TestStageRejectedOnInvoices(t *testing.T) {
	svc, _ := newTestService(invoiceConfig(), "Karnataka", "Karnataka")

	doc, err := svc.Create(context.Background(), sampleCreate())
	require.NoError(t, err)

	_, err = svc.SetStage(context.Background(), doc.ID, StageSent)
	require.ErrorIs(t, err, ErrStageUnsupported)
}
