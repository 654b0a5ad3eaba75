package pricing

// DocumentTotals is the aggregate produced for one document on every save.
// It is recomputed from the lines each time; nothing here is incremental.
type DocumentTotals struct {
	Subtotal      float64
	TotalDiscount float64
	TaxableAmount float64
	CGST          float64
	SGST          float64
	IGST          float64
	NetAmount     float64
}

// LineAmounts pairs the computed gross and net amount for one line.
type LineAmounts struct {
	Gross float64
	Net   float64
}

// PriceLines runs the pricer and discount resolver over every line,
// preserving order. Callers persist these alongside the document so the
// stored lines never carry stale amounts.
func PriceLines(lines []LineItem) []LineAmounts {
	out := make([]LineAmounts, len(lines))
	for i, line := range lines {
		gross := Price(line)
		out[i] = LineAmounts{Gross: gross, Net: ApplyDiscount(gross, line.Discount)}
	}
	return out
}

// ComputeTotals aggregates all lines into document totals and applies the
// tax split. The computation is idempotent: identical inputs always yield
// bit-identical output, which edit flows rely on when recomputing after
// line changes.
func ComputeTotals(lines []LineItem, cfg TaxConfig, sameState bool) DocumentTotals {
	var subtotal, discount float64
	for _, amounts := range PriceLines(lines) {
		subtotal += amounts.Gross
		discount += amounts.Gross - amounts.Net
	}
	subtotal = Round2(subtotal)
	discount = Round2(discount)

	taxable := Round2(subtotal - discount)
	if taxable < 0 {
		taxable = 0
	}
	split := SplitTax(taxable, sameState, cfg)
	cgst := Round2(split.CGST)
	sgst := Round2(split.SGST)
	igst := Round2(split.IGST)

	return DocumentTotals{
		Subtotal:      subtotal,
		TotalDiscount: discount,
		TaxableAmount: taxable,
		CGST:          cgst,
		SGST:          sgst,
		IGST:          igst,
		NetAmount:     Round2(taxable + cgst + sgst + igst),
	}
}
