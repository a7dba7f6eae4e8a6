package transaction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	domainerrs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-service/internal/testutil"
)

func TestValidate(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	tp := testutil.NewFixedTimeProvider(now)
	validator := NewValidator(tp, decimal.NewFromInt(100000))

	tests := []struct {
		name          string
		userID        string
		amount        decimal.Decimal
		txType        entity.TransactionType
		timestamp     time.Time
		expectedError error
	}{
		{
			name:      "Valid deposit",
			userID:    "user_789",
			amount:    decimal.NewFromFloat(100.50),
			txType:    entity.TypeDeposit,
			timestamp: now.Add(-time.Minute),
		},
		{
			name:      "Valid withdraw",
			userID:    "user_789",
			amount:    decimal.NewFromInt(50),
			txType:    entity.TypeWithdraw,
			timestamp: now.Add(-time.Hour),
		},
		{
			name:      "Timestamp exactly now",
			userID:    "user_789",
			amount:    decimal.NewFromInt(1),
			txType:    entity.TypeDeposit,
			timestamp: now,
		},
		{
			name:      "Amount exactly at the cap",
			userID:    "user_789",
			amount:    decimal.NewFromInt(100000),
			txType:    entity.TypeDeposit,
			timestamp: now,
		},
		{
			name:          "Empty user ID",
			userID:        "",
			amount:        decimal.NewFromInt(10),
			txType:        entity.TypeDeposit,
			timestamp:     now,
			expectedError: domainerrs.ErrInvalidUserID,
		},
		{
			name:          "Invalid type",
			userID:        "user_789",
			amount:        decimal.NewFromInt(10),
			txType:        "transfer",
			timestamp:     now,
			expectedError: domainerrs.ErrInvalidTransactionType,
		},
		{
			name:          "Zero amount",
			userID:        "user_789",
			amount:        decimal.Zero,
			txType:        entity.TypeDeposit,
			timestamp:     now,
			expectedError: domainerrs.ErrInvalidAmount,
		},
		{
			name:          "Negative amount",
			userID:        "user_789",
			amount:        decimal.NewFromInt(-10),
			txType:        entity.TypeDeposit,
			timestamp:     now,
			expectedError: domainerrs.ErrInvalidAmount,
		},
		{
			name:          "Future timestamp",
			userID:        "user_789",
			amount:        decimal.NewFromInt(10),
			txType:        entity.TypeDeposit,
			timestamp:     now.Add(time.Minute),
			expectedError: domainerrs.ErrFutureTimestamp,
		},
		{
			name:          "Stale timestamp beyond thirty days",
			userID:        "user_789",
			amount:        decimal.NewFromInt(10),
			txType:        entity.TypeDeposit,
			timestamp:     now.Add(-MaxTransactionAge - time.Second),
			expectedError: domainerrs.ErrStaleTimestamp,
		},
		{
			name:          "Amount over the cap",
			userID:        "user_789",
			amount:        decimal.NewFromFloat(100000.01),
			txType:        entity.TypeDeposit,
			timestamp:     now,
			expectedError: domainerrs.ErrAmountOverLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate("txn_test", tt.userID, tt.amount, tt.txType, tt.timestamp)

			if tt.expectedError == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedError)
			assert.ErrorIs(t, err, domainerrs.ErrValidationFailed)
		})
	}
}

func TestValidateOrder(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	tp := testutil.NewFixedTimeProvider(now)
	validator := NewValidator(tp, decimal.NewFromInt(100000))

	// A request failing several checks at once reports the first one in order
	err := validator.Validate("txn_test", "", decimal.Zero, "transfer", now.Add(time.Hour))
	assert.ErrorIs(t, err, domainerrs.ErrInvalidUserID)
}
