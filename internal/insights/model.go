// Package insights aggregates billing activity into the dashboard
// figures: revenue, outstanding balances, spend and top customers.
package insights

import "time"

// Summary carries the headline dashboard numbers. Display fields are
// locale-formatted renderings of their numeric counterparts.
type Summary struct {
	TotalRevenue          float64 `json:"total_revenue"`
	TotalRevenueDisplay   string  `json:"total_revenue_display"`
	OutstandingReceivable float64 `json:"outstanding_receivable"`
	OutstandingPayable    float64 `json:"outstanding_payable"`
	ExpensesThisMonth     float64 `json:"expenses_this_month"`
	InvoiceCount          int64   `json:"invoice_count"`
	QuotationCount        int64   `json:"quotation_count"`
	PurchaseCount         int64   `json:"purchase_count"`
	CustomerCount         int64   `json:"customer_count"`
}

// MonthlyRevenuePoint is one month of invoiced versus collected value.
type MonthlyRevenuePoint struct {
	Month     time.Time `json:"month"`
	Invoiced  float64   `json:"invoiced"`
	Collected float64   `json:"collected"`
}

// TopCustomer ranks a customer by billed value over the window.
type TopCustomer struct {
	CustomerID int64   `json:"customer_id"`
	Name       string  `json:"name"`
	Billed     float64 `json:"billed"`
	Paid       float64 `json:"paid"`
}
