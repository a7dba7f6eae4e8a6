package persistence

import (
	"context"
)

// UnitOfWork coordinates the writes that must land together: the ledger
// insert and the owning user's balance update either both commit or both
// roll back.
type UnitOfWork interface {
	// Begin starts a new unit of work and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the unit of work in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the unit of work in the given context
	Rollback(ctx context.Context) error

	// UserRepository returns a user repository bound to the unit of work
	UserRepository(ctx context.Context) UserRepository

	// TransactionRepository returns a ledger repository bound to the unit of work
	TransactionRepository(ctx context.Context) TransactionRepository
}
