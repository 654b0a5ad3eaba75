package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriceHeightWidth(t *testing.T) {
	line := LineItem{
		Kind:          MeasureHeightWidth,
		Quantity:      2,
		Primary:       3,
		Secondary:     4,
		RatePrimary:   50,
		RateSecondary: 30,
	}
	// 2 * (3*50 + 4*30) = 540
	require.Equal(t, 540.0, Price(line))
}

func TestPriceWeightAndUnitCount(t *testing.T) {
	weight := LineItem{Kind: MeasureWeight, Quantity: 3, Primary: 2.5, RatePrimary: 40}
	require.Equal(t, 300.0, Price(weight))

	units := LineItem{Kind: MeasureUnitCount, Quantity: 1, Primary: 12, RatePrimary: 9.5}
	require.Equal(t, 114.0, Price(units))
}

func TestPriceWasteAllowance(t *testing.T) {
	line := LineItem{
		Kind:          MeasureHeightWidth,
		Quantity:      2,
		Primary:       3,
		Secondary:     4,
		RatePrimary:   50,
		RateSecondary: 30,
		Waste:         &Waste{Primary: 1, Secondary: 0.5},
	}
	// base 540 plus 2 * (1*50 + 0.5*30) = 540 + 130
	require.Equal(t, 670.0, Price(line))
}

func TestPriceCoercesMissingValuesToZero(t *testing.T) {
	require.Equal(t, 0.0, Price(LineItem{Kind: MeasureWeight, Quantity: 5}))
	require.Equal(t, 0.0, Price(LineItem{Kind: MeasureWeight, Primary: 10, RatePrimary: 5}))

	negative := LineItem{Kind: MeasureUnitCount, Quantity: 2, Primary: -4, RatePrimary: 10}
	require.Equal(t, 0.0, Price(negative))

	nan := LineItem{Kind: MeasureWeight, Quantity: 1, Primary: math.NaN(), RatePrimary: 10}
	require.Equal(t, 0.0, Price(nan))
}

func TestApplyDiscountPercentage(t *testing.T) {
	require.Equal(t, 486.0, ApplyDiscount(540, Discount{Kind: DiscountPercentage, Value: 10}))
}

func TestApplyDiscountAbsolute(t *testing.T) {
	require.Equal(t, 500.0, ApplyDiscount(540, Discount{Kind: DiscountAbsolute, Value: 40}))
}

func TestApplyDiscountNeverNegative(t *testing.T) {
	require.Equal(t, 0.0, ApplyDiscount(100, Discount{Kind: DiscountAbsolute, Value: 250}))
	require.Equal(t, 0.0, ApplyDiscount(100, Discount{Kind: DiscountPercentage, Value: 150}))
}

func TestApplyDiscountIgnoresNegativeValue(t *testing.T) {
	require.Equal(t, 540.0, ApplyDiscount(540, Discount{Kind: DiscountAbsolute, Value: -20}))
	require.Equal(t, 540.0, ApplyDiscount(540, Discount{}))
}
