package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dixith12/Billing-App-sub001/internal/platform/httpx"
)

// Handler manages GST settings endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/gst", h.get)
	r.Put("/gst", h.update)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("get gst settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}

type updateRequest struct {
	CGSTPct   float64 `json:"cgst_pct" validate:"gte=0,lte=100"`
	SGSTPct   float64 `json:"sgst_pct" validate:"gte=0,lte=100"`
	HomeState string  `json:"home_state" validate:"required,max=100"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), GSTSettings{
		CGSTPct:   req.CGSTPct,
		SGSTPct:   req.SGSTPct,
		HomeState: req.HomeState,
	})
	if err != nil {
		h.logger.Error("update gst settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}
