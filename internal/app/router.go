package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Dixith12/Billing-App-sub001/internal/billing/documents"
	"github.com/Dixith12/Billing-App-sub001/internal/billing/quotations"
	"github.com/Dixith12/Billing-App-sub001/internal/expenses"
	"github.com/Dixith12/Billing-App-sub001/internal/insights"
	"github.com/Dixith12/Billing-App-sub001/internal/inventory"
	"github.com/Dixith12/Billing-App-sub001/internal/observability"
	"github.com/Dixith12/Billing-App-sub001/internal/partners/customers"
	"github.com/Dixith12/Billing-App-sub001/internal/partners/vendors"
	"github.com/Dixith12/Billing-App-sub001/internal/settings"
	"github.com/Dixith12/Billing-App-sub001/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	CustomersHandler  *customers.Handler
	VendorsHandler    *vendors.Handler
	InventoryHandler  *inventory.Handler
	ExpensesHandler   *expenses.Handler
	SettingsHandler   *settings.Handler
	InvoicesHandler   *documents.Handler
	QuotationsHandler *quotations.Handler
	PurchasesHandler  *documents.Handler
	InsightsHandler   *insights.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if params.CustomersHandler != nil {
			api.Route("/customers", params.CustomersHandler.MountRoutes)
		}
		if params.VendorsHandler != nil {
			api.Route("/vendors", params.VendorsHandler.MountRoutes)
		}
		if params.InventoryHandler != nil {
			api.Route("/inventory", params.InventoryHandler.MountRoutes)
		}
		if params.ExpensesHandler != nil {
			api.Route("/expenses", params.ExpensesHandler.MountRoutes)
		}
		if params.SettingsHandler != nil {
			api.Route("/settings", params.SettingsHandler.MountRoutes)
		}
		if params.InvoicesHandler != nil {
			api.Route("/invoices", params.InvoicesHandler.MountRoutes)
		}
		if params.QuotationsHandler != nil {
			api.Route("/quotations", params.QuotationsHandler.MountRoutes)
		}
		if params.PurchasesHandler != nil {
			api.Route("/purchases", params.PurchasesHandler.MountRoutes)
		}
		if params.InsightsHandler != nil {
			api.Route("/insights", params.InsightsHandler.MountRoutes)
		}
		if params.JobHandler != nil {
			api.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
