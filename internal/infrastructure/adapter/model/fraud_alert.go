package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FraudAlert represents the database model for fraud alerts
type FraudAlert struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	TransactionID string          `gorm:"not null;size:255;index"`
	UserID        string          `gorm:"not null;size:255;index"`
	AlertType     string          `gorm:"not null;size:50"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description   string          `gorm:"type:text"`
	Status        string          `gorm:"not null;size:50;default:pending"`
	CreatedAt     time.Time       `gorm:"not null"`

	Transaction Transaction `gorm:"foreignKey:TransactionID;references:TransactionID"`
}

// TableName specifies the table name for FraudAlert
func (FraudAlert) TableName() string {
	return "fraud_alerts"
}
