package persistence

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// GetByUserID retrieves a user by its external ID
	//
	// Possible errors:
	// - ErrUserNotFound: If no user with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID string) (*entity.User, error)

	// Create persists a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: If a user with the same external ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// GetOrCreate returns the existing user or creates one with balance 0
	// and active=true, persisting it before returning
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	GetOrCreate(ctx context.Context, userID string) (*entity.User, error)

	// GetOrCreateForUpdate behaves like GetOrCreate but acquires a row-level
	// lock on the user for the duration of the enclosing unit of work. Only
	// meaningful on a repository bound to an open unit of work.
	GetOrCreateForUpdate(ctx context.Context, userID string) (*entity.User, error)

	// UpdateBalance overwrites the user's stored balance
	//
	// Possible errors:
	// - ErrUserNotFound: If no user with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	UpdateBalance(ctx context.Context, userID string, balance decimal.Decimal) error
}
