package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
)

// MaxTransactionAge is how far in the past a transaction timestamp may lie
const MaxTransactionAge = 30 * 24 * time.Hour

// Validator rejects malformed or out-of-policy transaction requests before
// any state is touched. The insufficient-funds check is not here: it needs
// the locked balance and runs inside the atomic unit.
type Validator struct {
	timeProvider coreport.TimeProvider
	maxAmount    decimal.Decimal
}

// NewValidator creates a Validator with the given per-transaction maximum
func NewValidator(timeProvider coreport.TimeProvider, maxAmount decimal.Decimal) *Validator {
	return &Validator{
		timeProvider: timeProvider,
		maxAmount:    maxAmount,
	}
}

// Validate checks the request fields in a fixed order: user ID, type,
// amount positivity, future timestamp, stale timestamp, amount cap
func (v *Validator) Validate(
	transactionID string,
	userID string,
	amount decimal.Decimal,
	txType entity.TransactionType,
	timestamp time.Time,
) error {
	if userID == "" {
		return errs.NewValidationError(transactionID, userID, "user ID cannot be empty", errs.ErrInvalidUserID)
	}

	if !entity.IsValidTransactionType(string(txType)) {
		return errs.NewValidationError(transactionID, userID, "type must be deposit or withdraw", errs.ErrInvalidTransactionType)
	}

	if !amount.IsPositive() {
		return errs.NewValidationError(transactionID, userID, "amount must be greater than zero", errs.ErrInvalidAmount)
	}

	now := v.timeProvider.Now()

	if timestamp.After(now) {
		return errs.NewValidationError(transactionID, userID, "timestamp cannot be in the future", errs.ErrFutureTimestamp)
	}

	if timestamp.Before(now.Add(-MaxTransactionAge)) {
		return errs.NewValidationError(transactionID, userID, "transaction is too old (maximum 30 days)", errs.ErrStaleTimestamp)
	}

	if amount.GreaterThan(v.maxAmount) {
		return errs.NewValidationError(transactionID, userID,
			"amount exceeds the per-transaction maximum of "+v.maxAmount.String(), errs.ErrAmountOverLimit)
	}

	return nil
}
