package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateMatch(t *testing.T) {
	same, resolved := StateMatch("Karnataka", "karnataka")
	require.True(t, same)
	require.True(t, resolved)

	same, resolved = StateMatch("  KARNATAKA  ", "Karnataka")
	require.True(t, same)
	require.True(t, resolved)

	same, resolved = StateMatch("Kerala", "Karnataka")
	require.False(t, same)
	require.True(t, resolved)

	same, resolved = StateMatch("   ", "Karnataka")
	require.True(t, same)
	require.False(t, resolved)
}

func TestSplitTaxSameState(t *testing.T) {
	split := SplitTax(486, true, TaxConfig{CGSTPct: 9, SGSTPct: 9})
	require.Equal(t, 43.74, split.CGST)
	require.Equal(t, 43.74, split.SGST)
	require.Equal(t, 0.0, split.IGST)
}

func TestSplitTaxCrossState(t *testing.T) {
	split := SplitTax(486, false, TaxConfig{CGSTPct: 9, SGSTPct: 9})
	require.Equal(t, 0.0, split.CGST)
	require.Equal(t, 0.0, split.SGST)
	require.Equal(t, 87.48, split.IGST)
}

func TestSplitTaxZeroTaxable(t *testing.T) {
	require.Equal(t, TaxSplit{}, SplitTax(0, true, TaxConfig{CGSTPct: 9, SGSTPct: 9}))
	require.Equal(t, TaxSplit{}, SplitTax(-10, false, TaxConfig{CGSTPct: 9, SGSTPct: 9}))
}

func TestSplitTaxMutuallyExclusive(t *testing.T) {
	cfg := TaxConfig{CGSTPct: 6, SGSTPct: 6}
	for _, taxable := range []float64{0.01, 99.99, 486, 125000} {
		for _, sameState := range []bool{true, false} {
			split := SplitTax(taxable, sameState, cfg)
			intra := split.CGST > 0 || split.SGST > 0
			inter := split.IGST > 0
			require.NotEqual(t, intra, inter, "taxable=%v sameState=%v", taxable, sameState)
		}
	}
}

func TestZeroedConfig(t *testing.T) {
	cfg := TaxConfig{CGSTPct: 9, SGSTPct: 9, HomeState: "Karnataka"}.Zeroed()
	require.Equal(t, 0.0, cfg.CGSTPct)
	require.Equal(t, 0.0, cfg.SGSTPct)
	require.Equal(t, "Karnataka", cfg.HomeState)
	require.Equal(t, TaxSplit{}, SplitTax(486, true, cfg))
}
