package documents

import (
	"time"

	"github.com/Dixith12/Billing-App-sub001/internal/pricing"
)

// LineInput is the wire shape for one document line. Measurement and
// waste fields the caller omits default to zero when normalized; an
// omitted quantity defaults to 1, but an explicit zero is kept and
// prices the line to zero.
type LineInput struct {
	ItemName       string   `json:"item_name" validate:"required,max=160"`
	Kind           string   `json:"measurement_kind" validate:"required,oneof=height_width weight unit_count"`
	Quantity       *float64 `json:"quantity" validate:"omitempty,gte=0"`
	Primary        float64  `json:"primary_measure" validate:"omitempty,gte=0"`
	Secondary      float64  `json:"secondary_measure" validate:"omitempty,gte=0"`
	RatePrimary    float64  `json:"rate_primary" validate:"omitempty,gte=0"`
	RateSecondary  float64  `json:"rate_secondary" validate:"omitempty,gte=0"`
	WastePrimary   *float64 `json:"waste_primary" validate:"omitempty,gte=0"`
	WasteSecondary *float64 `json:"waste_secondary" validate:"omitempty,gte=0"`
	DiscountKind   string   `json:"discount_kind" validate:"omitempty,oneof=percentage absolute"`
	DiscountValue  float64  `json:"discount_value" validate:"omitempty,gte=0"`
}

// Normalize converts the wire line into a stored line with every
// optional field made concrete. Amounts are filled in by the service.
func (in LineInput) Normalize(order int) Line {
	line := Line{
		ItemName:      in.ItemName,
		Kind:          pricing.MeasurementKind(in.Kind),
		Quantity:      1,
		Primary:       in.Primary,
		Secondary:     in.Secondary,
		RatePrimary:   in.RatePrimary,
		RateSecondary: in.RateSecondary,
		DiscountKind:  pricing.DiscountKind(in.DiscountKind),
		DiscountValue: in.DiscountValue,
		LineOrder:     order,
	}
	if in.Quantity != nil {
		line.Quantity = *in.Quantity
	}
	if in.WastePrimary != nil || in.WasteSecondary != nil {
		line.HasWaste = true
		if in.WastePrimary != nil {
			line.WastePrimary = *in.WastePrimary
		}
		if in.WasteSecondary != nil {
			line.WasteSecond = *in.WasteSecondary
		}
	}
	if line.DiscountKind == "" {
		line.DiscountKind = pricing.DiscountPercentage
	}
	return line
}

// Input converts a stored line back into the wire shape, used when one
// document is derived from another.
func (l Line) Input() LineInput {
	qty := l.Quantity
	in := LineInput{
		ItemName:      l.ItemName,
		Kind:          string(l.Kind),
		Quantity:      &qty,
		Primary:       l.Primary,
		Secondary:     l.Secondary,
		RatePrimary:   l.RatePrimary,
		RateSecondary: l.RateSecondary,
		DiscountKind:  string(l.DiscountKind),
		DiscountValue: l.DiscountValue,
	}
	if l.HasWaste {
		wp, ws := l.WastePrimary, l.WasteSecond
		in.WastePrimary = &wp
		in.WasteSecondary = &ws
	}
	return in
}

// CreateRequest creates a new document.
type CreateRequest struct {
	PartyID int64       `json:"party_id" validate:"required,gt=0"`
	DocDate *time.Time  `json:"doc_date"`
	Notes   *string     `json:"notes" validate:"omitempty,max=2000"`
	Lines   []LineInput `json:"lines" validate:"required,min=1,dive"`
}

// UpdateRequest replaces document fields. Lines, when present, replace
// the full set and force a totals recomputation.
type UpdateRequest struct {
	PartyID *int64      `json:"party_id" validate:"omitempty,gt=0"`
	DocDate *time.Time  `json:"doc_date"`
	Notes   *string     `json:"notes" validate:"omitempty,max=2000"`
	Lines   []LineInput `json:"lines" validate:"omitempty,min=1,dive"`
}

// ListRequest filters and pages a document listing.
type ListRequest struct {
	PartyID  int64
	Status   string
	Stage    string
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
	Limit    int
	Offset   int
}

// RecordPaymentRequest records one payment against a paying document.
type RecordPaymentRequest struct {
	Amount float64    `json:"amount" validate:"required,gt=0"`
	Mode   string     `json:"mode" validate:"omitempty,oneof=cash upi card bank_transfer cheque other"`
	PaidAt *time.Time `json:"paid_at"`
	Note   *string    `json:"note" validate:"omitempty,max=500"`
}

// SetStageRequest moves a quotation through its workflow.
type SetStageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=draft sent accepted declined"`
}
