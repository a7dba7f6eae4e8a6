package entity

import (
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
)

// User represents an account holder with a running balance.
// The balance is authoritative: it always equals the balance_after of the
// user's most recent completed transaction, or zero if there is none.
type User struct {
	ID        uint64          // Internal primary key
	UserID    string          // External unique identifier
	Balance   decimal.Decimal // Authoritative running total
	IsActive  bool            // Whether the account is active
	CreatedAt time.Time       // When the user was created
	UpdatedAt time.Time       // When the user was last updated
}

// NewUser creates a new user with the given external ID and initial balance
func NewUser(userID string, initialBalance decimal.Decimal, timeProvider coreport.TimeProvider) (*User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if initialBalance.IsNegative() {
		return nil, errs.ErrInvalidAmount
	}

	now := timeProvider.Now()
	return &User{
		UserID:    userID,
		Balance:   initialBalance,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanWithdraw checks if the user's balance covers the given amount
func (u *User) CanWithdraw(amount decimal.Decimal) bool {
	return u.Balance.GreaterThanOrEqual(amount)
}

// SetBalance overwrites the stored balance and refreshes the update time
func (u *User) SetBalance(balance decimal.Decimal, timeProvider coreport.TimeProvider) {
	u.Balance = balance
	u.UpdatedAt = timeProvider.Now()
}
