// Package invoices configures the document engine for customer
// invoices: INV numbering, payments enabled, no workflow stages.
package invoices

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dixith12/Billing-App-sub001/internal/billing/documents"
	"github.com/Dixith12/Billing-App-sub001/internal/observability"
	"github.com/Dixith12/Billing-App-sub001/internal/sequence"
)

// Config is the invoice variant of the document engine.
func Config() documents.Config {
	return documents.Config{
		Kind:          documents.KindInvoice,
		Table:         "invoices",
		LinesTable:    "invoice_lines",
		PaymentsTable: "invoice_payments",
		CounterKey:    sequence.KeyInvoice,
		NumberPrefix:  "INV",
		Party:         documents.PartyCustomer,
	}
}

// New wires the invoice service and handler. cache may be nil.
func New(pool *pgxpool.Pool, logger *slog.Logger, tax documents.TaxSource, customers documents.PartyDirectory, metrics *observability.Metrics, cache documents.CacheInvalidator) (*documents.Service, *documents.Handler) {
	cfg := Config()
	service := documents.NewService(cfg, documents.NewRepository(cfg, pool), tax, customers, metrics, cache)
	return service, documents.NewHandler(logger, service)
}
