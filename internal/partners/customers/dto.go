package customers

type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	GSTIN   *string `json:"gstin,omitempty" validate:"omitempty,max=20"`
	State   string  `json:"state" validate:"max=100"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	GSTIN   *string `json:"gstin,omitempty" validate:"omitempty,max=20"`
	State   *string `json:"state,omitempty" validate:"omitempty,max=100"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

type ListCustomersRequest struct {
	Search string
	Limit  int
	Offset int
}
