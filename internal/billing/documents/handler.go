package documents

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dixith12/Billing-App-sub001/internal/platform/httpx"
	"github.com/Dixith12/Billing-App-sub001/internal/pricing"
	"github.com/Dixith12/Billing-App-sub001/internal/sequence"
	"github.com/Dixith12/Billing-App-sub001/internal/shared"
)

// Handler serves the HTTP surface for one document variant.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the variant's routes. Payment and stage routes
// only appear on variants that support them.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)

	if h.service.Config().Payments() {
		r.Post("/{id}/payments", h.recordPayment)
		r.Get("/{id}/payments", h.listPayments)
	}
	if h.service.Config().Kind == KindQuotation {
		r.Post("/{id}/stage", h.setStage)
	}
}

func (h *Handler) docID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("invalid %s id", h.service.Config().Kind))
		return 0, false
	}
	return id, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ListRequest{
		Status: q.Get("status"),
		Stage:  q.Get("stage"),
		Search: q.Get("search"),
	}
	if v := q.Get("party_id"); v != "" {
		req.PartyID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := q.Get("limit"); v != "" {
		req.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("offset"); v != "" {
		req.Offset, _ = strconv.Atoi(v)
	}
	if v := q.Get("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			req.DateFrom = &t
		}
	}
	if v := q.Get("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			req.DateTo = &t
		}
	}

	docs, page, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "list documents", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      docs,
		"pagination": page,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}
	doc, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get document", err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, "create document", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, doc)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondError(w, "update document", err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "delete document", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}
	var req RecordPaymentRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, result, err := h.service.RecordPayment(r.Context(), id, req)
	if err != nil {
		h.respondError(w, "record payment", err)
		return
	}
	// pending_amount is floored at zero; the signed balance after an
	// overpayment is visible through the document's effective_paid clamp.
	httpx.JSON(w, http.StatusOK, map[string]any{
		"document":       doc,
		"paid_amount":    result.PaidAmount,
		"pending_amount": doc.PendingAmount,
		"status":         result.Status,
	})
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}
	payments, err := h.service.ListPayments(r.Context(), id)
	if err != nil {
		h.respondError(w, "list payments", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": payments})
}

func (h *Handler) setStage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.docID(w, r)
	if !ok {
		return
	}
	var req SetStageRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	doc, err := h.service.SetStage(r.Context(), id, Stage(req.Stage))
	if err != nil {
		h.respondError(w, "set stage", err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	kind := string(h.service.Config().Kind)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", kind+" not found")
	case errors.Is(err, pricing.ErrInvalidPaymentAmount):
		httpx.FieldProblem(w, map[string]string{"amount": "must be positive"})
	case errors.Is(err, sequence.ErrCounterAllocation):
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "could not allocate a document number, retry the request")
	case errors.Is(err, ErrPaymentsUnsupported), errors.Is(err, ErrStageUnsupported):
		httpx.Problem(w, http.StatusMethodNotAllowed, "Method Not Allowed", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
