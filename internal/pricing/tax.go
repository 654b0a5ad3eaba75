package pricing

import "strings"

// TaxConfig holds the GST percentages and the seller's registered state.
// It is loaded once per computation and never mutated mid-calculation.
type TaxConfig struct {
	CGSTPct   float64
	SGSTPct   float64
	HomeState string
}

// Zeroed returns a copy of the config with both rates cleared. Used when
// no counterparty state can be resolved and the zero-tax policy applies.
func (c TaxConfig) Zeroed() TaxConfig {
	c.CGSTPct = 0
	c.SGSTPct = 0
	return c
}

// TaxSplit carries the mutually exclusive CGST+SGST vs IGST amounts.
type TaxSplit struct {
	CGST float64
	SGST float64
	IGST float64
}

// StateMatch compares the counterparty state against the home state,
// trimmed and case-insensitive. resolved is false when the counterparty
// carries no state at all; callers then zero the rates rather than guess
// a place of supply.
func StateMatch(counterparty, home string) (same, resolved bool) {
	cp := strings.TrimSpace(counterparty)
	if cp == "" {
		return true, false
	}
	return strings.EqualFold(cp, strings.TrimSpace(home)), true
}

// SplitTax splits the taxable amount into CGST+SGST for same-state
// documents or IGST (at the combined rate) for cross-state documents.
// A non-positive taxable amount yields an all-zero split. The amounts
// are un-rounded so a tiny taxable amount with non-zero rates still
// carries a non-zero split; rounding happens once at aggregation.
func SplitTax(taxable float64, sameState bool, cfg TaxConfig) TaxSplit {
	if taxable <= 0 {
		return TaxSplit{}
	}
	if sameState {
		return TaxSplit{
			CGST: taxable * cfg.CGSTPct / 100,
			SGST: taxable * cfg.SGSTPct / 100,
		}
	}
	return TaxSplit{
		IGST: taxable * (cfg.CGSTPct + cfg.SGSTPct) / 100,
	}
}
