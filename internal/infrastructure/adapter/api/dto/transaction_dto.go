package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
)

// CreateTransactionRequest represents the API request for creating a transaction
type CreateTransactionRequest struct {
	TransactionID string          `json:"transaction_id"`
	UserID        string          `json:"user_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Type          string          `json:"type" binding:"required,oneof=deposit withdraw"`
	Timestamp     string          `json:"timestamp"`
}

// TransactionData is the wire representation of a transaction
type TransactionData struct {
	ID            uint64          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Timestamp     time.Time       `json:"timestamp"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateTransactionResponse represents the API response for a created transaction
type CreateTransactionResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    TransactionData `json:"data"`
}

// TransactionResponse represents the API response for a transaction lookup
type TransactionResponse struct {
	Success bool            `json:"success"`
	Data    TransactionData `json:"data"`
}

// TransactionHistoryResponse represents a page of transaction history
type TransactionHistoryResponse struct {
	Transactions []TransactionData `json:"transactions"`
	Total        int64             `json:"total"`
	Page         int               `json:"page"`
	Limit        int               `json:"limit"`
	TotalPages   int               `json:"totalPages"`
}

// FromTransaction maps a transaction entity to its wire representation
func FromTransaction(txn *entity.Transaction) TransactionData {
	return TransactionData{
		ID:            txn.ID,
		TransactionID: txn.TransactionID,
		UserID:        txn.UserID,
		Amount:        txn.Amount,
		Type:          string(txn.Type),
		Timestamp:     txn.Timestamp,
		BalanceAfter:  txn.BalanceAfter,
		Status:        string(txn.Status),
		CreatedAt:     txn.CreatedAt,
	}
}

// FromTransactions maps a slice of transaction entities
func FromTransactions(txns []entity.Transaction) []TransactionData {
	out := make([]TransactionData, 0, len(txns))
	for i := range txns {
		out = append(out, FromTransaction(&txns[i]))
	}
	return out
}
