package persistence

import (
	"context"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
)

// FraudAlertRepository defines methods to persist and review fraud alerts
type FraudAlertRepository interface {
	// Create persists a new alert
	Create(ctx context.Context, alert *entity.FraudAlert) error

	// GetByID retrieves an alert by its internal ID
	//
	// Possible errors:
	// - ErrAlertNotFound: If no alert with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.FraudAlert, error)

	// List returns alerts newest first with the originating transaction
	// attached. An empty userID returns alerts for all users.
	List(ctx context.Context, userID string) ([]entity.FraudAlert, error)

	// Update persists a changed alert status
	//
	// Possible errors:
	// - ErrAlertNotFound: If no alert with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, alert *entity.FraudAlert) error
}
