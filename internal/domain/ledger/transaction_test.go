package ledger

import (
	"testing"

	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func createDeferredCredit(t *testing.T, amount string) *Transaction {
	t.Helper()
	amt, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	tx, err := NewTransaction(uuid.New(), LogTypeCredit, amt, true)
	require.NoError(t, err)
	return tx
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// ============================================
// PaymentStatus Tests
// ============================================

func TestPaymentStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  PaymentStatus
		isValid bool
	}{
		{PaymentStatusNone, true},
		{PaymentStatusPartial, true},
		{PaymentStatusFull, true},
		{PaymentStatus("INVALID"), false},
		{PaymentStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestPaymentStatus_IsTerminal(t *testing.T) {
	assert.False(t, PaymentStatusNone.IsTerminal())
	assert.False(t, PaymentStatusPartial.IsTerminal())
	assert.True(t, PaymentStatusFull.IsTerminal())
}

// ============================================
// NewTransaction Tests
// ============================================

func TestNewTransaction(t *testing.T) {
	t.Run("deferred credit starts with full amount due", func(t *testing.T) {
		tx := createDeferredCredit(t, "1000")

		assert.Equal(t, LogTypeCredit, tx.LogType)
		assert.True(t, tx.PayLater)
		assert.True(t, tx.DueAmount.Equal(dec(t, "1000")))
		assert.Equal(t, PaymentStatusNone, tx.PaymentStatus)
		assert.False(t, tx.IsSettled())
	})

	t.Run("non-deferred credit has zero due and is settled", func(t *testing.T) {
		tx, err := NewTransaction(uuid.New(), LogTypeCredit, dec(t, "500"), false)
		require.NoError(t, err)

		assert.True(t, tx.DueAmount.IsZero())
		assert.True(t, tx.IsSettled())
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewTransaction(uuid.New(), LogTypeCredit, decimal.Zero, false)
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_AMOUNT", derr.Code)
	})

	t.Run("rejects invalid log type", func(t *testing.T) {
		_, err := NewTransaction(uuid.New(), LogType("TRANSFER"), dec(t, "10"), false)
		require.Error(t, err)
	})

	t.Run("rejects empty owner", func(t *testing.T) {
		_, err := NewTransaction(uuid.Nil, LogTypeCredit, dec(t, "10"), false)
		require.Error(t, err)
	})
}

// ============================================
// Profit inclusion Tests
// ============================================

func TestTransaction_CountsTowardProfit(t *testing.T) {
	t.Run("settled credit counts", func(t *testing.T) {
		tx, err := NewTransaction(uuid.New(), LogTypeCredit, dec(t, "100"), false)
		require.NoError(t, err)
		assert.True(t, tx.CountsTowardProfit())
	})

	t.Run("deferred credit with outstanding due does not count", func(t *testing.T) {
		tx := createDeferredCredit(t, "100")
		assert.False(t, tx.CountsTowardProfit())
	})

	t.Run("deferred credit fully settled counts", func(t *testing.T) {
		tx := createDeferredCredit(t, "100")
		_, err := tx.SettleFull()
		require.NoError(t, err)
		assert.True(t, tx.CountsTowardProfit())
	})

	t.Run("debit never counts", func(t *testing.T) {
		tx, err := NewTransaction(uuid.New(), LogTypeDebit, dec(t, "100"), false)
		require.NoError(t, err)
		assert.False(t, tx.CountsTowardProfit())
	})
}

func TestTransaction_ProfitContribution(t *testing.T) {
	tx, err := NewTransaction(uuid.New(), LogTypeCredit, dec(t, "1000"), false)
	require.NoError(t, err)
	tx.WithCommission(uuid.New(), dec(t, "100")).WithCollection(uuid.New(), dec(t, "50"))

	assert.True(t, tx.ProfitContribution().Equal(dec(t, "850")))
}

// ============================================
// Settlement Tests
// ============================================

func TestTransaction_ApplyPartialSettlement(t *testing.T) {
	t.Run("reduces due and marks PARTIAL", func(t *testing.T) {
		tx := createDeferredCredit(t, "1000")

		res, err := tx.ApplyPartialSettlement(dec(t, "300"), dec(t, "200"))
		require.NoError(t, err)

		assert.True(t, res.SettledAmount.Equal(dec(t, "500")))
		assert.True(t, res.RemainingDue.Equal(dec(t, "500")))
		assert.Equal(t, PaymentStatusPartial, tx.PaymentStatus)
		assert.True(t, tx.DueAmount.Equal(dec(t, "500")))
	})

	t.Run("exceeding due fails and leaves state untouched", func(t *testing.T) {
		tx := createDeferredCredit(t, "1000")
		_, err := tx.ApplyPartialSettlement(dec(t, "300"), dec(t, "200"))
		require.NoError(t, err)

		_, err = tx.ApplyPartialSettlement(dec(t, "600"), decimal.Zero)
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "EXCEEDS_DUE", derr.Code)
		assert.True(t, tx.DueAmount.Equal(dec(t, "500")))
		assert.Equal(t, PaymentStatusPartial, tx.PaymentStatus)
	})

	t.Run("reaching exactly zero transitions to FULL", func(t *testing.T) {
		tx := createDeferredCredit(t, "500")

		res, err := tx.ApplyPartialSettlement(dec(t, "300"), dec(t, "200"))
		require.NoError(t, err)

		assert.True(t, res.RemainingDue.IsZero())
		assert.Equal(t, PaymentStatusFull, res.PaymentStatus)
		assert.Equal(t, PaymentStatusFull, tx.PaymentStatus)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		tx := createDeferredCredit(t, "500")
		_, err := tx.ApplyPartialSettlement(dec(t, "-1"), decimal.Zero)
		require.Error(t, err)
	})

	t.Run("conservation: settled amounts plus remaining due equals original", func(t *testing.T) {
		tx := createDeferredCredit(t, "1000")
		settled := decimal.Zero

		steps := [][2]string{{"100", "50"}, {"200", "0"}, {"0", "150"}}
		for _, step := range steps {
			res, err := tx.ApplyPartialSettlement(dec(t, step[0]), dec(t, step[1]))
			require.NoError(t, err)
			settled = settled.Add(res.SettledAmount)
			assert.False(t, tx.DueAmount.IsNegative())
		}

		assert.True(t, settled.Add(tx.DueAmount).Equal(dec(t, "1000")))
	})
}

func TestTransaction_SettleFull(t *testing.T) {
	t.Run("zeroes due and marks FULL", func(t *testing.T) {
		tx := createDeferredCredit(t, "500")

		res, err := tx.SettleFull()
		require.NoError(t, err)

		assert.True(t, res.SettledAmount.Equal(dec(t, "500")))
		assert.True(t, tx.DueAmount.IsZero())
		assert.Equal(t, PaymentStatusFull, tx.PaymentStatus)
	})

	t.Run("settles the remaining due after a partial", func(t *testing.T) {
		tx := createDeferredCredit(t, "1000")
		_, err := tx.ApplyPartialSettlement(dec(t, "400"), decimal.Zero)
		require.NoError(t, err)

		res, err := tx.SettleFull()
		require.NoError(t, err)
		assert.True(t, res.SettledAmount.Equal(dec(t, "600")))
	})

	t.Run("FULL is terminal", func(t *testing.T) {
		tx := createDeferredCredit(t, "500")
		_, err := tx.SettleFull()
		require.NoError(t, err)

		_, err = tx.SettleFull()
		assert.ErrorIs(t, err, shared.ErrAlreadySettled)

		_, err = tx.ApplyPartialSettlement(dec(t, "1"), decimal.Zero)
		assert.ErrorIs(t, err, shared.ErrAlreadySettled)
	})

	t.Run("rejects settlement on non-deferred transaction", func(t *testing.T) {
		tx, err := NewTransaction(uuid.New(), LogTypeCredit, dec(t, "500"), false)
		require.NoError(t, err)

		_, err = tx.SettleFull()
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_STATE", derr.Code)
	})
}
