package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleLine() LineItem {
	return LineItem{
		Kind:          MeasureHeightWidth,
		Quantity:      2,
		Primary:       3,
		Secondary:     4,
		RatePrimary:   50,
		RateSecondary: 30,
		Discount:      Discount{Kind: DiscountPercentage, Value: 10},
	}
}

func TestComputeTotalsSameState(t *testing.T) {
	totals := ComputeTotals([]LineItem{sampleLine()}, TaxConfig{CGSTPct: 9, SGSTPct: 9}, true)

	require.Equal(t, 540.0, totals.Subtotal)
	require.Equal(t, 54.0, totals.TotalDiscount)
	require.Equal(t, 486.0, totals.TaxableAmount)
	require.Equal(t, 43.74, totals.CGST)
	require.Equal(t, 43.74, totals.SGST)
	require.Equal(t, 0.0, totals.IGST)
	require.Equal(t, 573.48, totals.NetAmount)
}

func TestComputeTotalsCrossState(t *testing.T) {
	totals := ComputeTotals([]LineItem{sampleLine()}, TaxConfig{CGSTPct: 9, SGSTPct: 9}, false)

	require.Equal(t, 486.0, totals.TaxableAmount)
	require.Equal(t, 0.0, totals.CGST)
	require.Equal(t, 0.0, totals.SGST)
	require.Equal(t, 87.48, totals.IGST)
	// Same total as the intra-state variant, different split.
	require.Equal(t, 573.48, totals.NetAmount)
}

func TestComputeTotalsRoundsTaxAtAggregation(t *testing.T) {
	// One paisa of taxable value: the split itself stays non-zero so the
	// intra/inter exclusivity holds, while the stored document amounts
	// round to two decimals.
	line := LineItem{Kind: MeasureUnitCount, Quantity: 1, Primary: 1, RatePrimary: 0.01}
	cfg := TaxConfig{CGSTPct: 6, SGSTPct: 6}

	split := SplitTax(0.01, true, cfg)
	require.Greater(t, split.CGST, 0.0)
	require.Greater(t, split.SGST, 0.0)

	totals := ComputeTotals([]LineItem{line}, cfg, true)
	require.Equal(t, 0.01, totals.TaxableAmount)
	require.Equal(t, 0.0, totals.CGST)
	require.Equal(t, 0.0, totals.SGST)
	require.Equal(t, 0.01, totals.NetAmount)
}

func TestComputeTotalsIdempotent(t *testing.T) {
	lines := []LineItem{
		sampleLine(),
		{Kind: MeasureWeight, Quantity: 3, Primary: 1.75, RatePrimary: 62.5, Discount: Discount{Kind: DiscountAbsolute, Value: 25}},
		{Kind: MeasureUnitCount, Quantity: 7, Primary: 4, RatePrimary: 12.99},
	}
	cfg := TaxConfig{CGSTPct: 9, SGSTPct: 9}

	first := ComputeTotals(lines, cfg, true)
	second := ComputeTotals(lines, cfg, true)
	require.Equal(t, first, second)
}

func TestComputeTotalsNetConservation(t *testing.T) {
	cases := [][]LineItem{
		{sampleLine()},
		{{Kind: MeasureWeight, Quantity: 5, Primary: 0.4, RatePrimary: 333.33}},
		{{Kind: MeasureUnitCount, Quantity: 1, Primary: 3, RatePrimary: 0.01}},
		{},
	}
	for _, lines := range cases {
		for _, sameState := range []bool{true, false} {
			totals := ComputeTotals(lines, TaxConfig{CGSTPct: 9, SGSTPct: 9}, sameState)
			sum := Round2(totals.TaxableAmount + totals.CGST + totals.SGST + totals.IGST)
			require.Equal(t, sum, totals.NetAmount)
		}
	}
}

func TestComputeTotalsDiscountExceedingGross(t *testing.T) {
	lines := []LineItem{{
		Kind:        MeasureUnitCount,
		Quantity:    1,
		Primary:     2,
		RatePrimary: 50,
		Discount:    Discount{Kind: DiscountAbsolute, Value: 500},
	}}
	totals := ComputeTotals(lines, TaxConfig{CGSTPct: 9, SGSTPct: 9}, true)

	require.Equal(t, 100.0, totals.Subtotal)
	require.Equal(t, 100.0, totals.TotalDiscount)
	require.Equal(t, 0.0, totals.TaxableAmount)
	require.Equal(t, 0.0, totals.NetAmount)
}

func TestComputeTotalsEmptyLines(t *testing.T) {
	require.Equal(t, DocumentTotals{}, ComputeTotals(nil, TaxConfig{CGSTPct: 9, SGSTPct: 9}, true))
}

func TestPriceLinesKeepsOrder(t *testing.T) {
	lines := []LineItem{
		{Kind: MeasureUnitCount, Quantity: 1, Primary: 1, RatePrimary: 100},
		{Kind: MeasureUnitCount, Quantity: 1, Primary: 1, RatePrimary: 200, Discount: Discount{Kind: DiscountPercentage, Value: 50}},
	}
	amounts := PriceLines(lines)
	require.Len(t, amounts, 2)
	require.Equal(t, LineAmounts{Gross: 100, Net: 100}, amounts[0])
	require.Equal(t, LineAmounts{Gross: 200, Net: 100}, amounts[1])
}
