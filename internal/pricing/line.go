// Package pricing implements the document pricing engine: line amounts,
// discounts, GST splits, document totals and payment status derivation.
// Every function is pure; persistence and transport live elsewhere.
package pricing

import "math"

// MeasurementKind selects which magnitudes and rates apply to a line.
type MeasurementKind string

const (
	MeasureHeightWidth MeasurementKind = "height_width"
	MeasureWeight      MeasurementKind = "weight"
	MeasureUnitCount   MeasurementKind = "unit_count"
)

// DiscountKind distinguishes percentage from absolute discounts.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountAbsolute   DiscountKind = "absolute"
)

// Discount is a per-line reduction applied after the gross amount.
type Discount struct {
	Kind  DiscountKind
	Value float64
}

// Waste describes extra billed material beyond the measured quantity.
// It is priced with the identical formula as the line itself.
type Waste struct {
	Primary   float64
	Secondary float64
}

// LineItem is one priced row within an invoice, quotation or purchase.
// For height_width lines both measures and both rates apply; weight and
// unit_count lines use Primary and RatePrimary only.
type LineItem struct {
	Kind          MeasurementKind
	Quantity      float64
	Primary       float64
	Secondary     float64
	RatePrimary   float64
	RateSecondary float64
	Waste         *Waste
	Discount      Discount
}

// Price computes the gross amount for a line, waste allowance included.
// Missing or negative magnitudes and rates count as zero rather than
// erroring; the engine never blocks a half-filled form.
func Price(line LineItem) float64 {
	qty := nonNegative(line.Quantity)
	gross := qty * measureAmount(line.Kind, line.Primary, line.Secondary, line.RatePrimary, line.RateSecondary)
	if line.Waste != nil {
		gross += qty * measureAmount(line.Kind, line.Waste.Primary, line.Waste.Secondary, line.RatePrimary, line.RateSecondary)
	}
	return Round2(gross)
}

// ApplyDiscount reduces a gross amount by the line discount, clamped so a
// discount can never turn a line negative. Non-positive discount values
// mean no discount.
func ApplyDiscount(gross float64, d Discount) float64 {
	gross = nonNegative(gross)
	value := nonNegative(d.Value)
	var cut float64
	switch d.Kind {
	case DiscountPercentage:
		cut = gross * value / 100
	case DiscountAbsolute:
		cut = value
	}
	if cut > gross {
		cut = gross
	}
	return Round2(gross - cut)
}

// Round2 rounds to two decimal places, the precision every monetary value
// in the engine is stored at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func measureAmount(kind MeasurementKind, primary, secondary, ratePrimary, rateSecondary float64) float64 {
	switch kind {
	case MeasureHeightWidth:
		return nonNegative(primary)*nonNegative(ratePrimary) + nonNegative(secondary)*nonNegative(rateSecondary)
	default:
		return nonNegative(primary) * nonNegative(ratePrimary)
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
