package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
)

// AlertType classifies the heuristic that raised a fraud alert
type AlertType string

// Alert types. AlertUnusualPattern is defined for forward compatibility;
// no current heuristic raises it.
const (
	AlertHighAmount      AlertType = "high_amount"
	AlertRapidSuccession AlertType = "rapid_succession"
	AlertUnusualPattern  AlertType = "unusual_pattern"
)

// AlertStatus represents the review state of a fraud alert
type AlertStatus string

// Alert statuses
const (
	AlertPending            AlertStatus = "pending"
	AlertResolvedLegitimate AlertStatus = "resolved_legitimate"
	AlertResolvedFraudulent AlertStatus = "resolved_fraudulent"
)

// Resolution is the reviewer's verdict on a pending alert
type Resolution string

// Resolutions
const (
	ResolutionLegitimate Resolution = "legitimate"
	ResolutionFraudulent Resolution = "fraudulent"
)

// FraudAlert records a suspicious pattern detected on a committed
// transaction. Alerts are advisory: they never block or reverse the
// transaction that raised them.
type FraudAlert struct {
	ID            uint64          // Internal primary key
	TransactionID string          // External ID of the originating transaction
	UserID        string          // External ID of the owning user
	AlertType     AlertType       // Which heuristic fired
	Amount        decimal.Decimal // Amount of the originating transaction
	Description   string          // Human-readable explanation
	Status        AlertStatus     // pending until resolved
	CreatedAt     time.Time       // When the alert was raised
	Transaction   *Transaction    // Originating transaction, attached on lookups
}

// NewFraudAlert builds a pending alert for the given committed transaction
func NewFraudAlert(txn *Transaction, alertType AlertType, timeProvider coreport.TimeProvider) *FraudAlert {
	return &FraudAlert{
		TransactionID: txn.TransactionID,
		UserID:        txn.UserID,
		AlertType:     alertType,
		Amount:        txn.Amount,
		Description:   alertDescription(txn, alertType),
		Status:        AlertPending,
		CreatedAt:     timeProvider.Now(),
	}
}

// Resolve transitions the alert to a resolved status. Re-resolving an
// already-resolved alert overwrites the previous verdict.
func (a *FraudAlert) Resolve(resolution Resolution) error {
	switch resolution {
	case ResolutionLegitimate:
		a.Status = AlertResolvedLegitimate
	case ResolutionFraudulent:
		a.Status = AlertResolvedFraudulent
	default:
		return fmt.Errorf("%w: %s", errs.ErrInvalidResolution, resolution)
	}
	return nil
}

// alertDescription returns the human-readable text stored with each alert
func alertDescription(txn *Transaction, alertType AlertType) string {
	switch alertType {
	case AlertHighAmount:
		return fmt.Sprintf("High-amount transaction: $%s", txn.Amount.String())
	case AlertRapidSuccession:
		return "Multiple transactions within a short time window"
	default:
		return "Unusual transaction pattern detected"
	}
}
