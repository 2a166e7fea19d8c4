package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPaymentStatusFor(t *testing.T) {
	tests := []struct {
		name string
		paid decimal.Decimal
		due  decimal.Decimal
		want domain.PaymentStatus
	}{
		{name: "nothing paid", paid: decimal.Zero, due: dec("500"), want: domain.PaymentPending},
		{name: "part paid", paid: dec("200"), due: dec("300"), want: domain.PaymentPartial},
		{name: "fully paid", paid: dec("500"), due: decimal.Zero, want: domain.PaymentCompleted},
		{name: "zero total booking", paid: decimal.Zero, due: decimal.Zero, want: domain.PaymentCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.PaymentStatusFor(tt.paid, tt.due))
		})
	}
}

func TestBooking_PaymentFlow(t *testing.T) {
	b := domain.Booking{BookingNumber: "BK2401010001", TotalAmount: dec("500")}
	require.NoError(t, b.ApplyPaidAmount(decimal.Zero))
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.True(t, b.DueAmount.Equal(dec("500")))

	paymentType, err := b.CheckPayment(dec("200"))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentTypePartial, paymentType)
	require.NoError(t, b.ApplyPaidAmount(dec("200")))
	assert.True(t, b.DueAmount.Equal(dec("300")))
	assert.Equal(t, domain.PaymentPartial, b.PaymentStatus)

	paymentType, err = b.CheckPayment(dec("300"))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentTypeFull, paymentType)
	require.NoError(t, b.ApplyPaidAmount(dec("500")))
	assert.True(t, b.DueAmount.IsZero())
	assert.Equal(t, domain.PaymentCompleted, b.PaymentStatus)

	_, err = b.CheckPayment(dec("1"))
	assert.ErrorIs(t, err, apperrors.ErrAlreadySettled)
}

func TestBooking_CheckPaymentRejectsBadAmounts(t *testing.T) {
	b := domain.Booking{TotalAmount: dec("500")}
	require.NoError(t, b.ApplyPaidAmount(dec("100")))

	for _, amount := range []string{"0", "-5", "400.01"} {
		t.Run(amount, func(t *testing.T) {
			_, err := b.CheckPayment(dec(amount))
			assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
		})
	}
}

func TestBooking_ApplyPaidAmountRejectsExcess(t *testing.T) {
	b := domain.Booking{TotalAmount: dec("100")}
	err := b.ApplyPaidAmount(dec("100.01"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	assert.True(t, b.PaidAmount.IsZero(), "state must not change on error")
}

func TestBooking_TransitionDelivery(t *testing.T) {
	delivered := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("permissive accepts any valid status", func(t *testing.T) {
		b := domain.Booking{DeliveryStatus: domain.DeliveryNotStarted}
		require.NoError(t, b.TransitionDelivery(domain.DeliveryDelivered, &delivered, false))
		assert.Equal(t, domain.DeliveryDelivered, b.DeliveryStatus)
		require.NotNil(t, b.ActualDeliveryDate)
		assert.True(t, b.ActualDeliveryDate.Equal(delivered))
	})

	t.Run("delivered without date leaves it unset", func(t *testing.T) {
		b := domain.Booking{DeliveryStatus: domain.DeliveryOutForDelivery}
		require.NoError(t, b.TransitionDelivery(domain.DeliveryDelivered, nil, false))
		assert.Nil(t, b.ActualDeliveryDate)
	})

	t.Run("strict rejects skipping", func(t *testing.T) {
		b := domain.Booking{DeliveryStatus: domain.DeliveryNotStarted}
		err := b.TransitionDelivery(domain.DeliveryDelivered, nil, true)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, domain.DeliveryNotStarted, b.DeliveryStatus)
	})

	t.Run("unknown status", func(t *testing.T) {
		b := domain.Booking{DeliveryStatus: domain.DeliveryNotStarted}
		err := b.TransitionDelivery(domain.DeliveryStatus("lost"), nil, false)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestBooking_LedgerIssues(t *testing.T) {
	b := domain.Booking{TotalAmount: dec("500"), PaidAmount: dec("200"), DueAmount: dec("300"), PaymentStatus: domain.PaymentPartial}
	assert.Empty(t, b.LedgerIssues(dec("200")))

	issues := b.LedgerIssues(dec("250"))
	assert.Equal(t, []string{"paid amount does not match active payments"}, issues)

	b.DueAmount = dec("310")
	assert.Contains(t, b.LedgerIssues(dec("200")), "due amount does not equal total minus paid")
}
