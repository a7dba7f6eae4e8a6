package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
)

// ResolveAlertRequest represents the API request for resolving a fraud alert
type ResolveAlertRequest struct {
	Resolution string `json:"resolution" binding:"required,oneof=legitimate fraudulent"`
}

// FraudAlertData is the wire representation of a fraud alert
type FraudAlertData struct {
	ID            uint64           `json:"id"`
	TransactionID string           `json:"transaction_id"`
	UserID        string           `json:"user_id"`
	AlertType     string           `json:"alert_type"`
	Amount        decimal.Decimal  `json:"amount"`
	Description   string           `json:"description"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	Transaction   *TransactionData `json:"transaction,omitempty"`
}

// FromFraudAlert maps a fraud alert entity to its wire representation
func FromFraudAlert(alert *entity.FraudAlert) FraudAlertData {
	data := FraudAlertData{
		ID:            alert.ID,
		TransactionID: alert.TransactionID,
		UserID:        alert.UserID,
		AlertType:     string(alert.AlertType),
		Amount:        alert.Amount,
		Description:   alert.Description,
		Status:        string(alert.Status),
		CreatedAt:     alert.CreatedAt,
	}
	if alert.Transaction != nil {
		txn := FromTransaction(alert.Transaction)
		data.Transaction = &txn
	}
	return data
}

// FromFraudAlerts maps a slice of fraud alert entities
func FromFraudAlerts(alerts []entity.FraudAlert) []FraudAlertData {
	out := make([]FraudAlertData, 0, len(alerts))
	for i := range alerts {
		out = append(out, FromFraudAlert(&alerts[i]))
	}
	return out
}
