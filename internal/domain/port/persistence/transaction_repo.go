package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
)

// HistoryFilter narrows and pages a user's transaction history.
// The date range is applied only when both bounds are set.
type HistoryFilter struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
	Offset    int
	Limit     int
}

// TransactionRepository defines essential methods to interact with the ledger
type TransactionRepository interface {
	// Create appends a new transaction record to the ledger
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If a transaction with the same external ID exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByTransactionID retrieves a transaction by its external ID with the
	// owning user attached
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error)

	// ListByUser returns one page of the user's transactions ordered by
	// timestamp descending, plus the total count matching the filter
	// ignoring pagination
	ListByUser(ctx context.Context, filter HistoryFilter) ([]entity.Transaction, int64, error)

	// ListCompletedAfter returns the user's completed transactions with
	// timestamp strictly greater than the given instant, newest first
	ListCompletedAfter(ctx context.Context, userID string, after time.Time) ([]entity.Transaction, error)
}
