package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	"github.com/amirhossein-jamali/transaction-service/internal/domain/port/persistence"
)

// History defaults when the caller omits paging parameters
const (
	DefaultHistoryPage  = 1
	DefaultHistoryLimit = 10
)

// HistoryQuery describes a paged, optionally date-filtered history request.
// The date filter is applied only when both bounds are present.
type HistoryQuery struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// HistoryPage is one page of a user's transaction history, newest first
type HistoryPage struct {
	Transactions []entity.Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// GetHistory returns a page of the user's transactions ordered by timestamp
// descending. An empty result set is a valid page, not an error.
func (p *Processor) GetHistory(ctx context.Context, query HistoryQuery) (*HistoryPage, error) {
	page := query.Page
	if page < 1 {
		page = DefaultHistoryPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = DefaultHistoryLimit
	}

	filter := persistence.HistoryFilter{
		UserID: query.UserID,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	if query.StartDate != nil && query.EndDate != nil {
		filter.StartDate = query.StartDate
		filter.EndDate = query.EndDate
	}

	transactions, total, err := p.txnRepo.ListByUser(ctx, filter)
	if err != nil {
		p.logger.Error("Failed to load transaction history", map[string]any{
			"user_id": query.UserID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("failed to load transaction history: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &HistoryPage{
		Transactions: transactions,
		Total:        total,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
	}, nil
}
