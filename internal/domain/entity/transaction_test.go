package entity

import (
	"testing"
	"time"

	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	clock := fixedClock{now: fixedTime}

	t.Run("Valid cash transaction", func(t *testing.T) {
		tx, err := NewTransaction(
			"Jane Wambui",
			"",
			"500.00",
			string(CategoryTithe),
			string(PaymentCash),
			7,
			clock,
		)

		require.NoError(t, err)
		assert.Equal(t, "Jane Wambui", tx.MemberName)
		assert.Equal(t, int64(50000), tx.AmountInCents)
		assert.Equal(t, "500.00", tx.Amount)
		assert.Equal(t, CategoryTithe, tx.Category)
		assert.Equal(t, PaymentCash, tx.PaymentType)
		assert.Equal(t, StatusPending, tx.Status)
		assert.Empty(t, tx.Receipt)
		require.NotNil(t, tx.RecordedBy)
		assert.Equal(t, uint64(7), *tx.RecordedBy)
		assert.Equal(t, fixedTime, tx.CreatedAt)
	})

	t.Run("Amount is normalized to two decimal places", func(t *testing.T) {
		tx, err := NewTransaction("Jane Wambui", "", "250", string(CategoryOffering), string(PaymentCash), 7, clock)

		require.NoError(t, err)
		assert.Equal(t, "250.00", tx.Amount)
		assert.Equal(t, int64(25000), tx.AmountInCents)
	})

	t.Run("M-Pesa requires a phone number", func(t *testing.T) {
		tx, err := NewTransaction("Jane Wambui", "", "500.00", string(CategoryTithe), string(PaymentMpesa), 7, clock)

		assert.ErrorIs(t, err, errs.ErrPhoneRequired)
		assert.Nil(t, tx)
	})

	t.Run("Same input with cash succeeds without a phone number", func(t *testing.T) {
		tx, err := NewTransaction("Jane Wambui", "", "500.00", string(CategoryTithe), string(PaymentCash), 7, clock)

		require.NoError(t, err)
		assert.NotNil(t, tx)
	})

	t.Run("M-Pesa with phone number succeeds", func(t *testing.T) {
		tx, err := NewTransaction("Jane Wambui", "+254712345678", "500.00", string(CategoryTithe), string(PaymentMpesa), 7, clock)

		require.NoError(t, err)
		assert.Equal(t, "+254712345678", tx.PhoneNumber)
	})

	t.Run("Negative amount is rejected", func(t *testing.T) {
		tx, err := NewTransaction("Jane Wambui", "", "-1", string(CategoryTithe), string(PaymentCash), 7, clock)

		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
		assert.Nil(t, tx)
	})

	t.Run("Zero amount is allowed", func(t *testing.T) {
		tx, err := NewTransaction("Jane Wambui", "", "0", string(CategoryTithe), string(PaymentCash), 7, clock)

		require.NoError(t, err)
		assert.Equal(t, int64(0), tx.AmountInCents)
	})

	t.Run("Empty member name is rejected", func(t *testing.T) {
		tx, err := NewTransaction("", "", "500.00", string(CategoryTithe), string(PaymentCash), 7, clock)

		assert.ErrorIs(t, err, errs.ErrMemberNameRequired)
		assert.Nil(t, tx)
	})

	t.Run("Invalid category is rejected", func(t *testing.T) {
		tx, err := NewTransaction("Jane Wambui", "", "500.00", "HARAMBEE", string(PaymentCash), 7, clock)

		assert.ErrorIs(t, err, errs.ErrInvalidCategory)
		assert.Nil(t, tx)
	})

	t.Run("Invalid payment type is rejected", func(t *testing.T) {
		tx, err := NewTransaction("Jane Wambui", "", "500.00", string(CategoryTithe), "CHEQUE", 7, clock)

		assert.ErrorIs(t, err, errs.ErrInvalidPaymentType)
		assert.Nil(t, tx)
	})
}

func TestMarkCompleted(t *testing.T) {
	fixedTime := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	clock := fixedClock{now: fixedTime}

	newPending := func(t *testing.T) *Transaction {
		t.Helper()
		tx, err := NewTransaction("Jane Wambui", "", "500.00", string(CategoryTithe), string(PaymentCash), 7, clock)
		require.NoError(t, err)
		return tx
	}

	t.Run("Pending transaction completes with receipt", func(t *testing.T) {
		tx := newPending(t)

		err := tx.MarkCompleted("receipts/abc.pdf", clock)

		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, tx.Status)
		assert.Equal(t, "receipts/abc.pdf", tx.Receipt)
	})

	t.Run("Completing twice fails and leaves state unchanged", func(t *testing.T) {
		tx := newPending(t)
		require.NoError(t, tx.MarkCompleted("receipts/abc.pdf", clock))

		err := tx.MarkCompleted("receipts/other.pdf", clock)

		assert.ErrorIs(t, err, errs.ErrAlreadyCompleted)
		assert.Equal(t, StatusCompleted, tx.Status)
		assert.Equal(t, "receipts/abc.pdf", tx.Receipt)
	})

	t.Run("Receipt present iff completed", func(t *testing.T) {
		tx := newPending(t)
		assert.True(t, tx.IsPending())
		assert.Empty(t, tx.Receipt)

		require.NoError(t, tx.MarkCompleted("receipts/abc.pdf", clock))
		assert.False(t, tx.IsPending())
		assert.NotEmpty(t, tx.Receipt)
	})
}

func TestOwnedBy(t *testing.T) {
	clock := fixedClock{now: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)}
	tx, err := NewTransaction("Jane Wambui", "", "500.00", string(CategoryTithe), string(PaymentCash), 7, clock)
	require.NoError(t, err)

	assert.True(t, tx.OwnedBy(7))
	assert.False(t, tx.OwnedBy(8))

	// Owner reference absent after profile deletion
	tx.RecordedBy = nil
	assert.False(t, tx.OwnedBy(7))
}

func TestDisplayLabels(t *testing.T) {
	assert.Equal(t, "Tithe", CategoryTithe.Display())
	assert.Equal(t, "Offering", CategoryOffering.Display())
	assert.Equal(t, "Church Building", CategoryBuilding.Display())
	assert.Equal(t, "Cash", PaymentCash.Display())
	assert.Equal(t, "M-Pesa", PaymentMpesa.Display())
	assert.Equal(t, "Pending", StatusPending.Display())
	assert.Equal(t, "Completed", StatusCompleted.Display())
}
