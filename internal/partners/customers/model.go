package customers

import "time"

// Customer is a billing counterparty on the sales side. State drives the
// CGST+SGST vs IGST decision for the customer's documents.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	GSTIN     *string   `json:"gstin,omitempty"`
	State     string    `json:"state"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
