package quotations

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dixith12/Billing-App-sub001/internal/billing/documents"
	"github.com/Dixith12/Billing-App-sub001/internal/billing/invoices"
	"github.com/Dixith12/Billing-App-sub001/internal/pricing"
	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

type memoryRepo struct {
	cfg      documents.Config
	seq      int64
	nextID   int64
	docs     map[int64]*documents.Document
	lines    map[int64][]documents.Line
	payments map[int64][]documents.Payment
}

func newMemoryRepo(cfg documents.Config) *memoryRepo {
	return &memoryRepo{
		cfg:      cfg,
		docs:     make(map[int64]*documents.Document),
		lines:    make(map[int64][]documents.Line),
		payments: make(map[int64][]documents.Payment),
	}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(documents.Repository) error) error {
	return fn(r)
}

func (r *memoryRepo) NextNumber(ctx context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("%s-%04d", r.cfg.NumberPrefix, r.seq), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*documents.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *doc
	copied.Lines = append([]documents.Line(nil), r.lines[id]...)
	return &copied, nil
}

func (r *memoryRepo) List(ctx context.Context, req documents.ListRequest) ([]documents.Document, int, error) {
	var out []documents.Document
	for id := range r.docs {
		doc, _ := r.Get(ctx, id)
		out = append(out, *doc)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Create(ctx context.Context, doc *documents.Document) (int64, error) {
	r.nextID++
	copied := *doc
	copied.ID = r.nextID
	r.docs[copied.ID] = &copied
	return copied.ID, nil
}

func (r *memoryRepo) UpdateHeader(ctx context.Context, doc *documents.Document) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return shared.ErrNotFound
	}
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *memoryRepo) ReplaceLines(ctx context.Context, docID int64, lines []documents.Line) error {
	r.lines[docID] = append([]documents.Line(nil), lines...)
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.docs[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.docs, id)
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

func (r *memoryRepo) InsertPayment(ctx context.Context, p documents.Payment) (int64, error) {
	r.payments[p.DocumentID] = append(r.payments[p.DocumentID], p)
	return int64(len(r.payments[p.DocumentID])), nil
}

func (r *memoryRepo) ListPayments(ctx context.Context, docID int64) ([]documents.Payment, error) {
	return append([]documents.Payment(nil), r.payments[docID]...), nil
}

func (r *memoryRepo) SetStage(ctx context.Context, id int64, stage documents.Stage) error {
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

func TestConvertToInvoice(t *testing.T) {
	tax := staticTax{cfg: pricing.TaxConfig{CGSTPct: 9, SGSTPct: 9, HomeState: "Karnataka"}}
	parties := documents.PartyDirectoryFunc(func(ctx context.Context, id int64) (string, error) {
		return "Karnataka", nil
	})

	invCfg := invoices.Config()
	invoiceSvc := documents.NewService(invCfg, newMemoryRepo(invCfg), tax, parties, nil, nil)

	quoCfg := Config()
	base := documents.NewService(quoCfg, newMemoryRepo(quoCfg), tax, parties, nil, nil)
	svc := &Service{Service: base, invoices: invoiceSvc}

	quote, err := svc.Create(context.Background(), documents.CreateRequest{
		PartyID: 7,
		Lines: []documents.LineInput{{
			ItemName:      "Glass Panel",
			Kind:          "height_width",
			Primary:       3,
			Secondary:     2,
			RatePrimary:   100,
			RateSecondary: 120,
			DiscountKind:  "percentage",
			DiscountValue: 10,
		}},
	})
	require.NoError(t, err)
	require.Equal(t, "QUO-0001", quote.Number)

	invoice, err := svc.ConvertToInvoice(context.Background(), quote.ID)
	require.NoError(t, err)

	require.Equal(t, "INV-0001", invoice.Number)
	require.Equal(t, quote.PartyID, invoice.PartyID)
	require.Equal(t, quote.Totals, invoice.Totals)
	require.Equal(t, pricing.StatusPending, invoice.Status)

	// The source quotation moves to accepted.
	reloaded, err := svc.Get(context.Background(), quote.ID)
	require.NoError(t, err)
	require.Equal(t, documents.StageAccepted, *reloaded.Stage)
}
