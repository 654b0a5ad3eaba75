package pricing

import "errors"

// PaymentStatus is derived from (paidAmount, netAmount) at read time. It
// must never be trusted as stored truth once the net amount has changed.
type PaymentStatus string

const (
	StatusPending       PaymentStatus = "pending"
	StatusPartiallyPaid PaymentStatus = "partially_paid"
	StatusPaid          PaymentStatus = "paid"
)

// ErrInvalidPaymentAmount rejects non-positive payment amounts.
var ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")

// PaymentResult is the outcome of applying one payment event.
type PaymentResult struct {
	PaidAmount float64
	Remaining  float64
	Status     PaymentStatus
}

// RecordPayment applies one incremental payment to the running paid
// amount. The caller must execute the surrounding read-modify-write
// inside a transaction keyed on the document so concurrent recordings
// cannot lose an update.
func RecordPayment(paidAmount, netAmount, amount float64) (PaymentResult, error) {
	if amount <= 0 {
		return PaymentResult{}, ErrInvalidPaymentAmount
	}
	newPaid := Round2(paidAmount + amount)
	remaining := Round2(netAmount - newPaid)

	var status PaymentStatus
	switch {
	case newPaid >= netAmount || remaining <= 0:
		status = StatusPaid
	case newPaid > 0:
		status = StatusPartiallyPaid
	default:
		status = StatusPending
	}
	return PaymentResult{PaidAmount: newPaid, Remaining: remaining, Status: status}, nil
}

// DeriveStatus recomputes the payment status from first principles.
func DeriveStatus(paidAmount, netAmount float64) PaymentStatus {
	switch {
	case paidAmount <= 0:
		return StatusPending
	case paidAmount >= netAmount:
		return StatusPaid
	default:
		return StatusPartiallyPaid
	}
}

// EffectivePaid caps the displayed paid amount at the current net amount.
// A document edited downward after a partial payment can hold a stored
// paid amount above its new total; the clamp is display-only and never
// mutates stored state.
func EffectivePaid(paidAmount, netAmount float64) float64 {
	if paidAmount > netAmount {
		return netAmount
	}
	return paidAmount
}

// PendingAmount is the outstanding balance, floored at zero.
func PendingAmount(netAmount, paidAmount float64) float64 {
	pending := Round2(netAmount - paidAmount)
	if pending < 0 {
		return 0
	}
	return pending
}
