// Package quotations configures the document engine for customer
// quotations: QUO numbering, a draft/sent/accepted workflow, no
// payments, and conversion into an invoice.
package quotations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dixith12/Billing-App-sub001/internal/billing/documents"
	"github.com/Dixith12/Billing-App-sub001/internal/platform/httpx"
	"github.com/Dixith12/Billing-App-sub001/internal/sequence"
	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

// Config is the quotation variant of the document engine.
func Config() documents.Config {
	return documents.Config{
		Kind:         documents.KindQuotation,
		Table:        "quotations",
		LinesTable:   "quotation_lines",
		CounterKey:   sequence.KeyQuotation,
		NumberPrefix: "QUO",
		Party:        documents.PartyCustomer,
	}
}

// Service adds quotation-specific behaviour on top of the engine.
type Service struct {
	*documents.Service
	invoices *documents.Service
}

// NewService wires the quotation service. invoices receives converted
// documents; cache may be nil.
func NewService(pool *pgxpool.Pool, tax documents.TaxSource, customers documents.PartyDirectory, invoices *documents.Service, cache documents.CacheInvalidator) *Service {
	cfg := Config()
	base := documents.NewService(cfg, documents.NewRepository(cfg, pool), tax, customers, nil, cache)
	return &Service{Service: base, invoices: invoices}
}

// ConvertToInvoice creates an invoice from the quotation's lines and
// marks the quotation accepted. The invoice recomputes totals against
// the current tax settings rather than copying the snapshot.
func (s *Service) ConvertToInvoice(ctx context.Context, id int64) (*documents.Document, error) {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req := documents.CreateRequest{
		PartyID: quote.PartyID,
		Notes:   quote.Notes,
		Lines:   make([]documents.LineInput, len(quote.Lines)),
	}
	for i, l := range quote.Lines {
		req.Lines[i] = l.Input()
	}

	invoice, err := s.invoices.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("convert quotation %d: %w", id, err)
	}
	if _, err := s.SetStage(ctx, id, documents.StageAccepted); err != nil {
		return nil, err
	}
	return invoice, nil
}

// Handler serves quotation routes, adding conversion to the engine's
// surface.
type Handler struct {
	logger  *slog.Logger
	base    *documents.Handler
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:  logger,
		base:    documents.NewHandler(logger, service.Service),
		service: service,
	}
}

// MountRoutes registers quotation routes.
func (h *Handler) MountRoutes(r chi.Router) {
	h.base.MountRoutes(r)
	r.Post("/{id}/convert", h.convert)
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid quotation id")
		return
	}
	invoice, err := h.service.ConvertToInvoice(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "quotation not found")
			return
		}
		h.logger.Error("convert quotation", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, invoice)
}
