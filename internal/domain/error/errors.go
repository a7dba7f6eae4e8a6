package error

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidationFailed     = 4000
	CodeInsufficientFunds    = 4001
	CodeInvalidRequest       = 4002
	CodeInvalidUserID        = 4003
	CodeDuplicateTransaction = 4004
	CodeDuplicateUser        = 4005
	CodeInvalidResolution    = 4006
	CodeUserNotFound         = 4040
	CodeTransactionNotFound  = 4041
	CodeAlertNotFound        = 4042

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrValidationFailed is the class error for rejected transaction requests
	ErrValidationFailed = errors.New("transaction validation failed")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the user's balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrFutureTimestamp is returned when the transaction timestamp is in the future
	ErrFutureTimestamp = errors.New("transaction timestamp cannot be in the future")

	// ErrStaleTimestamp is returned when the transaction timestamp is older than the allowed window
	ErrStaleTimestamp = errors.New("transaction is too old")

	// ErrAmountOverLimit is returned when the amount exceeds the per-transaction maximum
	ErrAmountOverLimit = errors.New("amount exceeds the per-transaction maximum")

	// ErrInvalidAmount is returned when the amount is not strictly positive
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidUserID is returned when the user ID is empty
	ErrInvalidUserID = errors.New("user ID cannot be empty")

	// ErrInvalidTransactionType is returned when the type is not deposit or withdraw
	ErrInvalidTransactionType = errors.New("transaction type must be deposit or withdraw")

	// ErrInvalidResolution is returned when an alert resolution is not a known value
	ErrInvalidResolution = errors.New("resolution must be legitimate or fraudulent")

	// ErrDuplicateTransaction is returned when a transaction with the same external ID already exists
	ErrDuplicateTransaction = errors.New("transaction with this ID already exists")

	// ErrDuplicateUser is returned when explicitly creating a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAlertNotFound is returned when the requested fraud alert doesn't exist
	ErrAlertNotFound = errors.New("fraud alert not found")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrValidationFailed):
		return CodeValidationFailed
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrInvalidResolution):
		return CodeInvalidResolution
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrAlertNotFound):
		return CodeAlertNotFound
	default:
		return CodeInternalServer
	}
}

// ValidationError carries the reason a transaction request was rejected
type ValidationError struct {
	TransactionID string
	UserID        string
	Reason        string
	Err           error
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for transaction %s (user: %s): %s",
		e.TransactionID, e.UserID, e.Reason)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports the validation class in addition to the wrapped cause
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "validation_failed",
		"transaction_id": e.TransactionID,
		"user_id":        e.UserID,
		"reason":         e.Reason,
		"error_code":     CodeValidationFailed,
	}
}

// NewValidationError creates a validation error wrapping the specific cause
func NewValidationError(transactionID, userID, reason string, err error) error {
	return &ValidationError{
		TransactionID: transactionID,
		UserID:        userID,
		Reason:        reason,
		Err:           err,
	}
}

// InsufficientFundsError provides detailed error information for rejected withdrawals
type InsufficientFundsError struct {
	UserID    string
	Requested decimal.Decimal
	Available decimal.Decimal
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %s: requested %s, available %s",
		e.UserID, e.Requested.String(), e.Available.String())
}

// Is marks the error both as insufficient funds and as a validation failure:
// insufficient funds is a subtype of the validation class
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds || target == ErrValidationFailed
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":        "insufficient_funds",
		"user_id":           e.UserID,
		"requested_amount":  e.Requested.String(),
		"available_balance": e.Available.String(),
		"error_code":        CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(userID string, requested, available decimal.Decimal) error {
	return &InsufficientFundsError{
		UserID:    userID,
		Requested: requested,
		Available: available,
	}
}

// TransactionError represents a failure while persisting a transaction
type TransactionError struct {
	TransactionID string
	UserID        string
	Type          string
	Amount        string
	Reason        string
	Err           error
}

// Error implements the error interface for TransactionError
func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction error for ID %s (user: %s, amount: %s): %s - %v",
		e.TransactionID, e.UserID, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransactionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "transaction_error",
		"transaction_id": e.TransactionID,
		"user_id":        e.UserID,
		"type":           e.Type,
		"amount":         e.Amount,
		"reason":         e.Reason,
		"error":          e.Err.Error(),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewTransactionError creates a detailed transaction error
func NewTransactionError(transactionID, userID, txType, amount, reason string, err error) error {
	return &TransactionError{
		TransactionID: transactionID,
		UserID:        userID,
		Type:          txType,
		Amount:        amount,
		Reason:        reason,
		Err:           err,
	}
}

// IsValidationError checks if the error belongs to the client-rejection class
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsDuplicateTransactionError checks if the error is a duplicate transaction error
func IsDuplicateTransactionError(err error) bool {
	return errors.Is(err, ErrDuplicateTransaction)
}

// IsDuplicateUserError checks if the error is a duplicate user error
func IsDuplicateUserError(err error) bool {
	return errors.Is(err, ErrDuplicateUser)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrAlertNotFound)
}
