package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordPaymentPartialThenFull(t *testing.T) {
	first, err := RecordPayment(0, 573.48, 300)
	require.NoError(t, err)
	require.Equal(t, 300.0, first.PaidAmount)
	require.Equal(t, 273.48, first.Remaining)
	require.Equal(t, StatusPartiallyPaid, first.Status)

	second, err := RecordPayment(first.PaidAmount, 573.48, 273.48)
	require.NoError(t, err)
	require.Equal(t, 573.48, second.PaidAmount)
	require.Equal(t, 0.0, second.Remaining)
	require.Equal(t, StatusPaid, second.Status)
}

func TestRecordPaymentRejectsNonPositive(t *testing.T) {
	_, err := RecordPayment(573.48, 573.48, 0)
	require.ErrorIs(t, err, ErrInvalidPaymentAmount)

	_, err = RecordPayment(0, 100, -5)
	require.ErrorIs(t, err, ErrInvalidPaymentAmount)
}

func TestRecordPaymentOverpayIsPaid(t *testing.T) {
	res, err := RecordPayment(0, 100, 150)
	require.NoError(t, err)
	require.Equal(t, 150.0, res.PaidAmount)
	require.Equal(t, -50.0, res.Remaining)
	require.Equal(t, StatusPaid, res.Status)
}

func TestRecordPaymentMonotonic(t *testing.T) {
	const net = 1000.0
	paid := 0.0
	prev := StatusPending
	rank := map[PaymentStatus]int{StatusPending: 0, StatusPartiallyPaid: 1, StatusPaid: 2}

	for _, amount := range []float64{12.5, 100, 0.01, 400, 600} {
		res, err := RecordPayment(paid, net, amount)
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.PaidAmount, paid)
		require.GreaterOrEqual(t, rank[res.Status], rank[prev])
		paid = res.PaidAmount
		prev = res.Status
	}
	require.Equal(t, StatusPaid, prev)
}

func TestDeriveStatus(t *testing.T) {
	require.Equal(t, StatusPending, DeriveStatus(0, 500))
	require.Equal(t, StatusPartiallyPaid, DeriveStatus(200, 500))
	require.Equal(t, StatusPaid, DeriveStatus(500, 500))
	require.Equal(t, StatusPaid, DeriveStatus(600, 500))
	// Document edited down to 250 after a 300 payment.
	require.Equal(t, StatusPaid, DeriveStatus(300, 250))
}

func TestEffectivePaidClamp(t *testing.T) {
	require.Equal(t, 250.0, EffectivePaid(300, 250))
	require.Equal(t, 300.0, EffectivePaid(300, 573.48))
}

func TestPendingAmountFloor(t *testing.T) {
	require.Equal(t, 0.0, PendingAmount(250, 300))
	require.Equal(t, 273.48, PendingAmount(573.48, 300))
}
