package settings

import "time"

// GSTSettings is the single-row tax configuration for the business:
// the CGST/SGST percentages and the seller's registered home state.
// The IGST percentage is always the sum of the two by convention.
type GSTSettings struct {
	CGSTPct   float64   `json:"cgst_pct"`
	SGSTPct   float64   `json:"sgst_pct"`
	HomeState string    `json:"home_state"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IGSTPct returns the combined inter-state rate.
func (s GSTSettings) IGSTPct() float64 {
	return s.CGSTPct + s.SGSTPct
}
