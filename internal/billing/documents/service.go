package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Dixith12/Billing-App-sub001/internal/observability"
	"github.com/Dixith12/Billing-App-sub001/internal/pricing"
	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

// ErrPaymentsUnsupported is returned for payment operations on a
// variant that does not record payments.
var ErrPaymentsUnsupported = errors.New("documents: variant does not record payments")

// ErrStageUnsupported is returned for stage transitions on variants
// without a workflow.
var ErrStageUnsupported = errors.New("documents: variant has no workflow stages")

// TaxSource supplies the tax configuration snapshot for a computation.
type TaxSource interface {
	TaxConfig(ctx context.Context) (pricing.TaxConfig, error)
}

// PartyDirectory resolves the counterparty state for tax splitting.
type PartyDirectory interface {
	PartyState(ctx context.Context, id int64) (string, error)
}

// CacheInvalidator is notified after successful document writes so
// cached dashboard views rebuild on their next read instead of waiting
// out the TTL.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// PartyDirectoryFunc adapts a lookup function to PartyDirectory.
type PartyDirectoryFunc func(ctx context.Context, id int64) (string, error)

// PartyState calls f.
func (f PartyDirectoryFunc) PartyState(ctx context.Context, id int64) (string, error) {
	return f(ctx, id)
}

// Service orchestrates one document variant: totals recomputation on
// every write, payment application and numbering.
type Service struct {
	cfg     Config
	repo    Repository
	tax     TaxSource
	parties PartyDirectory
	metrics *observability.Metrics
	cache   CacheInvalidator
}

// NewService builds a Service for one variant. metrics and cache may be
// nil.
func NewService(cfg Config, repo Repository, tax TaxSource, parties PartyDirectory, metrics *observability.Metrics, cache CacheInvalidator) *Service {
	return &Service{cfg: cfg, repo: repo, tax: tax, parties: parties, metrics: metrics, cache: cache}
}

// invalidate bumps the insights cache after a write. Best effort: a
// missed bump only delays the dashboard until its TTL expires.
func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx)
}

// Config exposes the variant configuration.
func (s *Service) Config() Config { return s.cfg }

// compute prices the lines and fills in their amounts plus the document
// totals. The tax config is snapshotted once and applied to all lines.
func (s *Service) compute(ctx context.Context, partyID int64, lines []Line) (Totals, []Line, error) {
	cfg, err := s.tax.TaxConfig(ctx)
	if err != nil {
		return Totals{}, nil, fmt.Errorf("load tax config: %w", err)
	}
	state, err := s.parties.PartyState(ctx, partyID)
	if err != nil {
		return Totals{}, nil, fmt.Errorf("resolve party: %w", err)
	}

	same, resolved := pricing.StateMatch(state, cfg.HomeState)
	if !resolved {
		// Either side missing a state: tax cannot be determined, so the
		// document is computed untaxed rather than guessed.
		cfg = cfg.Zeroed()
	}

	items := make([]pricing.LineItem, len(lines))
	for i, l := range lines {
		items[i] = l.PricingItem()
	}
	amounts := pricing.PriceLines(items)
	for i := range lines {
		lines[i].Gross = amounts[i].Gross
		lines[i].Net = amounts[i].Net
	}
	return totalsFrom(pricing.ComputeTotals(items, cfg, same)), lines, nil
}

// decorate fills the derived payment view on a loaded document.
func (s *Service) decorate(doc *Document) {
	if !s.cfg.Payments() {
		return
	}
	doc.EffectivePaid = pricing.EffectivePaid(doc.PaidAmount, doc.Totals.NetAmount)
	doc.PendingAmount = pricing.PendingAmount(doc.Totals.NetAmount, doc.PaidAmount)
	doc.Status = pricing.DeriveStatus(doc.PaidAmount, doc.Totals.NetAmount)
}

// Create normalizes the lines, computes totals and persists the new
// document with a freshly allocated number, all in one transaction.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Document, error) {
	lines := make([]Line, len(req.Lines))
	for i, in := range req.Lines {
		lines[i] = in.Normalize(i)
	}
	totals, lines, err := s.compute(ctx, req.PartyID, lines)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Kind:    s.cfg.Kind,
		PartyID: req.PartyID,
		DocDate: time.Now(),
		Totals:  totals,
		Notes:   req.Notes,
	}
	if req.DocDate != nil {
		doc.DocDate = *req.DocDate
	}
	if s.cfg.Kind == KindQuotation {
		stage := StageDraft
		doc.Stage = &stage
	}

	err = s.repo.WithTx(ctx, func(tx Repository) error {
		number, err := tx.NextNumber(ctx)
		if err != nil {
			return err
		}
		doc.Number = number
		id, err := tx.Create(ctx, doc)
		if err != nil {
			return err
		}
		doc.ID = id
		return tx.ReplaceLines(ctx, id, lines)
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.cfg.Kind, err)
	}
	s.invalidate(ctx)
	return s.Get(ctx, doc.ID)
}

// Update applies header changes and, when lines are supplied, replaces
// them wholesale. Totals are always recomputed from the resulting
// lines; recomputing an unchanged document yields identical totals.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Document, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.cfg.Kind, err)
	}

	if req.PartyID != nil {
		existing.PartyID = *req.PartyID
	}
	if req.DocDate != nil {
		existing.DocDate = *req.DocDate
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}

	lines := existing.Lines
	if req.Lines != nil {
		lines = make([]Line, len(req.Lines))
		for i, in := range req.Lines {
			lines[i] = in.Normalize(i)
		}
	}
	totals, lines, err := s.compute(ctx, existing.PartyID, lines)
	if err != nil {
		return nil, err
	}
	existing.Totals = totals

	err = s.repo.WithTx(ctx, func(tx Repository) error {
		if err := tx.UpdateHeader(ctx, existing); err != nil {
			return err
		}
		return tx.ReplaceLines(ctx, id, lines)
	})
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.cfg.Kind, err)
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decorate(doc)
	return doc, nil
}

func (s *Service) List(ctx context.Context, req ListRequest) ([]Document, shared.Pagination, error) {
	if req.Limit <= 0 || req.Limit > 200 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	docs, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	for i := range docs {
		s.decorate(&docs[i])
	}
	return docs, shared.NewPagination(req.Offset/req.Limit+1, req.Limit, total), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// RecordPayment applies one payment inside a transaction: the paid and
// net amounts are read under a row lock, the new cumulative figure is
// derived and both the document and the payment event are written.
func (s *Service) RecordPayment(ctx context.Context, id int64, req RecordPaymentRequest) (*Document, pricing.PaymentResult, error) {
	if !s.cfg.Payments() {
		return nil, pricing.PaymentResult{}, ErrPaymentsUnsupported
	}

	var result pricing.PaymentResult
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		paid, net, err := tx.PaymentState(ctx, id)
		if err != nil {
			return err
		}
		result, err = pricing.RecordPayment(paid, net, req.Amount)
		if err != nil {
			return err
		}
		if err := tx.ApplyPayment(ctx, id, result.PaidAmount); err != nil {
			return err
		}

		payment := Payment{
			DocumentID: id,
			Reference:  uuid.NewString(),
			Amount:     req.Amount,
			Mode:       req.Mode,
			PaidAt:     time.Now(),
			Note:       req.Note,
		}
		if payment.Mode == "" {
			payment.Mode = "cash"
		}
		if req.PaidAt != nil {
			payment.PaidAt = *req.PaidAt
		}
		_, err = tx.InsertPayment(ctx, payment)
		return err
	})
	if err != nil {
		return nil, pricing.PaymentResult{}, fmt.Errorf("record payment on %s %d: %w", s.cfg.Kind, id, err)
	}

	s.metrics.PaymentRecorded()
	s.invalidate(ctx)
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, result, err
	}
	return doc, result, nil
}

func (s *Service) ListPayments(ctx context.Context, id int64) ([]Payment, error) {
	if !s.cfg.Payments() {
		return nil, ErrPaymentsUnsupported
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListPayments(ctx, id)
}

// SetStage moves a quotation between workflow stages.
func (s *Service) SetStage(ctx context.Context, id int64, stage Stage) (*Document, error) {
	if s.cfg.Kind != KindQuotation {
		return nil, ErrStageUnsupported
	}
	if err := s.repo.SetStage(ctx, id, stage); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}
