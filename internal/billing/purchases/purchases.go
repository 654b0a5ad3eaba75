// Package purchases configures the document engine for vendor
// purchases: PUR numbering, payments enabled, vendor counterparty.
package purchases

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dixith12/Billing-App-sub001/internal/billing/documents"
	"github.com/Dixith12/Billing-App-sub001/internal/observability"
	"github.com/Dixith12/Billing-App-sub001/internal/sequence"
)

// Config is the purchase variant of the document engine.
func Config() documents.Config {
	return documents.Config{
		Kind:          documents.KindPurchase,
		Table:         "purchases",
		LinesTable:    "purchase_lines",
		PaymentsTable: "purchase_payments",
		CounterKey:    sequence.KeyPurchase,
		NumberPrefix:  "PUR",
		Party:         documents.PartyVendor,
	}
}

// New wires the purchase service and handler. cache may be nil.
func New(pool *pgxpool.Pool, logger *slog.Logger, tax documents.TaxSource, vendors documents.PartyDirectory, metrics *observability.Metrics, cache documents.CacheInvalidator) (*documents.Service, *documents.Handler) {
	cfg := Config()
	service := documents.NewService(cfg, documents.NewRepository(cfg, pool), tax, vendors, metrics, cache)
	return service, documents.NewHandler(logger, service)
}
