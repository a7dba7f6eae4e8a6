package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents the database model for ledger entries
type Transaction struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	TransactionID string          `gorm:"uniqueIndex;not null;size:255"`
	UserID        string          `gorm:"not null;size:255;index:idx_transactions_user_timestamp"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type          string          `gorm:"not null;size:50"`
	Timestamp     time.Time       `gorm:"not null;index:idx_transactions_user_timestamp"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status        string          `gorm:"not null;size:50;default:completed"`
	CreatedAt     time.Time       `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:UserID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
