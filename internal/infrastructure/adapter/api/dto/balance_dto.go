package dto

import "github.com/shopspring/decimal"

// BalanceResponse represents the API response for a user's balance
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}
