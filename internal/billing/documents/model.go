// Package documents implements the shared billing document engine.
// Invoices, quotations and purchases are the same document shape with
// different counters, counterparties and payment rules; each variant
// configures this package instead of reimplementing the totals math.
package documents

import (
	"time"

	"github.com/Dixith12/Billing-App-sub001/internal/pricing"
	"github.com/Dixith12/Billing-App-sub001/internal/sequence"
)

// Kind discriminates the three document variants.
type Kind string

const (
	KindInvoice   Kind = "invoice"
	KindQuotation Kind = "quotation"
	KindPurchase  Kind = "purchase"
)

// PartyKind names which counterparty table a variant bills against.
type PartyKind string

const (
	PartyCustomer PartyKind = "customer"
	PartyVendor   PartyKind = "vendor"
)

// Config is the small per-variant parameterisation of the engine.
type Config struct {
	Kind          Kind
	Table         string
	LinesTable    string
	PaymentsTable string // empty when the variant takes no payments
	CounterKey    sequence.Key
	NumberPrefix  string
	Party         PartyKind
}

// Payments reports whether this variant records payments.
func (c Config) Payments() bool {
	return c.PaymentsTable != ""
}

// Stage is the quotation workflow position. Only quotations use it;
// payment status on paying variants is derived, never stored as truth.
type Stage string

const (
	StageDraft    Stage = "draft"
	StageSent     Stage = "sent"
	StageAccepted Stage = "accepted"
	StageDeclined Stage = "declined"
)

// Line is one normalized stored row. Optional inputs are defaulted to
// concrete zeros before persisting so the row never carries nulls for
// numeric fields; Gross and Net are recomputed on every save.
type Line struct {
	ID            int64                   `json:"id"`
	ItemName      string                  `json:"item_name"`
	Kind          pricing.MeasurementKind `json:"measurement_kind"`
	Quantity      float64                 `json:"quantity"`
	Primary       float64                 `json:"primary_measure"`
	Secondary     float64                 `json:"secondary_measure"`
	RatePrimary   float64                 `json:"rate_primary"`
	RateSecondary float64                 `json:"rate_secondary"`
	HasWaste      bool                    `json:"has_waste"`
	WastePrimary  float64                 `json:"waste_primary"`
	WasteSecond   float64                 `json:"waste_secondary"`
	DiscountKind  pricing.DiscountKind    `json:"discount_kind"`
	DiscountValue float64                 `json:"discount_value"`
	Gross         float64                 `json:"gross_amount"`
	Net           float64                 `json:"net_amount"`
	LineOrder     int                     `json:"line_order"`
}

// PricingItem converts the stored line back into engine input.
func (l Line) PricingItem() pricing.LineItem {
	item := pricing.LineItem{
		Kind:          l.Kind,
		Quantity:      l.Quantity,
		Primary:       l.Primary,
		Secondary:     l.Secondary,
		RatePrimary:   l.RatePrimary,
		RateSecondary: l.RateSecondary,
		Discount:      pricing.Discount{Kind: l.DiscountKind, Value: l.DiscountValue},
	}
	if l.HasWaste {
		item.Waste = &pricing.Waste{Primary: l.WastePrimary, Secondary: l.WasteSecond}
	}
	return item
}

// Totals is the persisted aggregate snapshot for a document.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	TotalDiscount float64 `json:"total_discount"`
	TaxableAmount float64 `json:"taxable_amount"`
	CGST          float64 `json:"cgst"`
	SGST          float64 `json:"sgst"`
	IGST          float64 `json:"igst"`
	NetAmount     float64 `json:"net_amount"`
}

func totalsFrom(t pricing.DocumentTotals) Totals {
	return Totals{
		Subtotal:      t.Subtotal,
		TotalDiscount: t.TotalDiscount,
		TaxableAmount: t.TaxableAmount,
		CGST:          t.CGST,
		SGST:          t.SGST,
		IGST:          t.IGST,
		NetAmount:     t.NetAmount,
	}
}

// Document is one invoice, quotation or purchase.
type Document struct {
	ID        int64      `json:"id"`
	Kind      Kind       `json:"kind"`
	Number    string     `json:"number"`
	PartyID   int64      `json:"party_id"`
	PartyName string     `json:"party_name,omitempty"`
	DocDate   time.Time  `json:"doc_date"`
	Lines     []Line     `json:"lines,omitempty"`
	Totals    Totals     `json:"totals"`
	Stage     *Stage     `json:"stage,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Payment view, only populated for paying variants. PaidAmount is
	// the stored cumulative figure; the rest is derived at read time.
	PaidAmount    float64               `json:"paid_amount"`
	EffectivePaid float64               `json:"effective_paid"`
	PendingAmount float64               `json:"pending_amount"`
	Status        pricing.PaymentStatus `json:"status,omitempty"`
}

// Payment is one recorded payment event against a document.
type Payment struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"document_id"`
	Reference  string    `json:"reference"`
	Amount     float64   `json:"amount"`
	Mode       string    `json:"mode"`
	PaidAt     time.Time `json:"paid_at"`
	Note       *string   `json:"note,omitempty"`
}
