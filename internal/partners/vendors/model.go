package vendors

import "time"

// Vendor is a purchase-side counterparty. Its state decides the tax split
// on purchase documents.
type Vendor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	GSTIN     *string   `json:"gstin,omitempty"`
	State     string    `json:"state"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateVendorRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	GSTIN   *string `json:"gstin,omitempty" validate:"omitempty,max=20"`
	State   string  `json:"state" validate:"max=100"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

type UpdateVendorRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	GSTIN   *string `json:"gstin,omitempty" validate:"omitempty,max=20"`
	State   *string `json:"state,omitempty" validate:"omitempty,max=100"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

type ListVendorsRequest struct {
	Search string
	Limit  int
	Offset int
}
