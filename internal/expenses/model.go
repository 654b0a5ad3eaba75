// Package expenses tracks simple business outgoings outside the
// purchase flow: rent, salaries, utilities and the like.
package expenses

import "time"

// Expense is one recorded outgoing.
type Expense struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	ExpenseDate time.Time `json:"expense_date"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MonthlyTotal aggregates spend for one calendar month.
type MonthlyTotal struct {
	Month time.Time `json:"month"`
	Total float64   `json:"total"`
}

// CreateExpenseRequest records a new expense.
type CreateExpenseRequest struct {
	Category    string     `json:"category" validate:"required,max=80"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	ExpenseDate *time.Time `json:"expense_date"`
	Note        *string    `json:"note" validate:"omitempty,max=500"`
}

// UpdateExpenseRequest patches an expense.
type UpdateExpenseRequest struct {
	Category    *string    `json:"category" validate:"omitempty,max=80"`
	Amount      *float64   `json:"amount" validate:"omitempty,gt=0"`
	ExpenseDate *time.Time `json:"expense_date"`
	Note        *string    `json:"note" validate:"omitempty,max=500"`
}

// ListExpensesRequest filters and pages the listing.
type ListExpensesRequest struct {
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}
