package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-service/internal/testutil"
)

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	timestamp := fixedTime.Add(-time.Minute)
	tp := testutil.NewFixedTimeProvider(fixedTime)

	t.Run("Valid deposit", func(t *testing.T) {
		txn, err := entity.NewTransaction("txn_1", "user_789", decimal.NewFromFloat(100.50), entity.TypeDeposit, timestamp, tp)

		require.NoError(t, err)
		assert.Equal(t, "txn_1", txn.TransactionID)
		assert.Equal(t, "user_789", txn.UserID)
		assert.True(t, txn.Amount.Equal(decimal.NewFromFloat(100.50)))
		assert.Equal(t, entity.TypeDeposit, txn.Type)
		assert.Equal(t, timestamp, txn.Timestamp)
		assert.Equal(t, entity.StatusCompleted, txn.Status)
		assert.Equal(t, fixedTime, txn.CreatedAt)
	})

	t.Run("Valid withdraw", func(t *testing.T) {
		txn, err := entity.NewTransaction("txn_2", "user_789", decimal.NewFromInt(25), entity.TypeWithdraw, timestamp, tp)

		require.NoError(t, err)
		assert.Equal(t, entity.TypeWithdraw, txn.Type)
	})

	t.Run("Empty user ID", func(t *testing.T) {
		txn, err := entity.NewTransaction("txn_3", "", decimal.NewFromInt(10), entity.TypeDeposit, timestamp, tp)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, txn)
	})

	t.Run("Non-positive amount", func(t *testing.T) {
		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
			txn, err := entity.NewTransaction("txn_4", "user_789", amount, entity.TypeDeposit, timestamp, tp)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			assert.Nil(t, txn)
		}
	})

	t.Run("Invalid type", func(t *testing.T) {
		txn, err := entity.NewTransaction("txn_5", "user_789", decimal.NewFromInt(10), "transfer", timestamp, tp)

		assert.ErrorIs(t, err, errs.ErrInvalidTransactionType)
		assert.Nil(t, txn)
	})
}

func TestTransactionDirection(t *testing.T) {
	deposit := &entity.Transaction{Type: entity.TypeDeposit}
	withdraw := &entity.Transaction{Type: entity.TypeWithdraw}

	assert.True(t, deposit.IsCredit())
	assert.False(t, deposit.IsDebit())
	assert.True(t, withdraw.IsDebit())
	assert.False(t, withdraw.IsCredit())
}

func TestTransactionBalanceFrom(t *testing.T) {
	balance := decimal.NewFromInt(100)

	deposit := &entity.Transaction{Type: entity.TypeDeposit, Amount: decimal.NewFromFloat(50.25)}
	assert.True(t, deposit.BalanceFrom(balance).Equal(decimal.NewFromFloat(150.25)))

	withdraw := &entity.Transaction{Type: entity.TypeWithdraw, Amount: decimal.NewFromFloat(30.75)}
	assert.True(t, withdraw.BalanceFrom(balance).Equal(decimal.NewFromFloat(69.25)))
}

func TestIsValidTransactionType(t *testing.T) {
	assert.True(t, entity.IsValidTransactionType("deposit"))
	assert.True(t, entity.IsValidTransactionType("withdraw"))
	assert.False(t, entity.IsValidTransactionType("transfer"))
	assert.False(t, entity.IsValidTransactionType(""))
	assert.False(t, entity.IsValidTransactionType("Deposit"))
}
