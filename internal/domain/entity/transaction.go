package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
)

// TransactionType represents the direction of a transaction
type TransactionType string

// Transaction types
const (
	TypeDeposit  TransactionType = "deposit"
	TypeWithdraw TransactionType = "withdraw"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// TransactionStatus constants
const (
	StatusCompleted TransactionStatus = "completed"
)

// Transaction represents a completed ledger entry. Records are immutable
// once created; there is no update path.
type Transaction struct {
	ID            uint64            // Internal primary key
	TransactionID string            // Unique external transaction identifier
	UserID        string            // External ID of the owning user
	Amount        decimal.Decimal   // Transaction amount, strictly positive
	Type          TransactionType   // deposit or withdraw
	Timestamp     time.Time         // When the transaction happened
	BalanceAfter  decimal.Decimal   // User's balance immediately after applying this transaction
	Status        TransactionStatus // Defaults to completed
	CreatedAt     time.Time         // When the record was created
	User          *User             // Owning user, attached on lookups
}

// NewTransaction creates a new transaction with basic field validation.
// BalanceAfter is filled in by the processor once the user's balance is known.
func NewTransaction(
	transactionID string,
	userID string,
	amount decimal.Decimal,
	txType TransactionType,
	timestamp time.Time,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if !amount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}
	if !IsValidTransactionType(string(txType)) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, txType)
	}

	return &Transaction{
		TransactionID: transactionID,
		UserID:        userID,
		Amount:        amount,
		Type:          txType,
		Timestamp:     timestamp,
		Status:        StatusCompleted,
		CreatedAt:     timeProvider.Now(),
	}, nil
}

// IsCredit returns true if this transaction increases the user's balance
func (t *Transaction) IsCredit() bool {
	return t.Type == TypeDeposit
}

// IsDebit returns true if this transaction decreases the user's balance
func (t *Transaction) IsDebit() bool {
	return t.Type == TypeWithdraw
}

// BalanceFrom computes the balance that results from applying this
// transaction to the given starting balance
func (t *Transaction) BalanceFrom(balance decimal.Decimal) decimal.Decimal {
	if t.IsCredit() {
		return balance.Add(t.Amount)
	}
	return balance.Sub(t.Amount)
}

// IsValidTransactionType validates if the transaction type is allowed
func IsValidTransactionType(txType string) bool {
	return txType == string(TypeDeposit) || txType == string(TypeWithdraw)
}
