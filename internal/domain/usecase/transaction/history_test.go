package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
)

func seedHistory(f *processorFixture, userID string, count int) {
	base := f.tp.Now().Add(-time.Duration(count) * time.Minute)
	for i := 0; i < count; i++ {
		f.txns.Seed(entity.Transaction{
			TransactionID: "txn_" + userID + "_" + string(rune('a'+i)),
			UserID:        userID,
			Amount:        decimal.NewFromInt(int64(i + 1)),
			Type:          entity.TypeDeposit,
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
			Status:        entity.StatusCompleted,
		})
	}
}

func TestGetHistoryDefaults(t *testing.T) {
	f := newProcessorFixture()
	seedHistory(f, "user_789", 2)

	page, err := f.processor.GetHistory(context.Background(), HistoryQuery{UserID: "user_789"})

	require.NoError(t, err)
	assert.Equal(t, DefaultHistoryPage, page.Page)
	assert.Equal(t, DefaultHistoryLimit, page.Limit)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Transactions, 2)

	// Newest first
	assert.True(t, page.Transactions[0].Timestamp.After(page.Transactions[1].Timestamp))
}

func TestGetHistoryPagination(t *testing.T) {
	f := newProcessorFixture()
	seedHistory(f, "user_789", 25)

	t.Run("First page", func(t *testing.T) {
		page, err := f.processor.GetHistory(context.Background(), HistoryQuery{
			UserID: "user_789",
			Page:   1,
			Limit:  10,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(25), page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Transactions, 10)
	})

	t.Run("Last partial page", func(t *testing.T) {
		page, err := f.processor.GetHistory(context.Background(), HistoryQuery{
			UserID: "user_789",
			Page:   3,
			Limit:  10,
		})

		require.NoError(t, err)
		assert.Len(t, page.Transactions, 5)
	})

	t.Run("Page past the end is empty", func(t *testing.T) {
		page, err := f.processor.GetHistory(context.Background(), HistoryQuery{
			UserID: "user_789",
			Page:   4,
			Limit:  10,
		})

		require.NoError(t, err)
		assert.Empty(t, page.Transactions)
		assert.Equal(t, int64(25), page.Total)
	})
}

func TestGetHistoryEmptyResult(t *testing.T) {
	f := newProcessorFixture()

	page, err := f.processor.GetHistory(context.Background(), HistoryQuery{UserID: "user_unknown"})

	require.NoError(t, err)
	assert.Empty(t, page.Transactions)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, 0, page.TotalPages)
}

func TestGetHistoryDateFilter(t *testing.T) {
	f := newProcessorFixture()
	seedHistory(f, "user_789", 10)

	now := f.tp.Now()
	start := now.Add(-5 * time.Minute)
	end := now

	t.Run("Both bounds narrow the result", func(t *testing.T) {
		page, err := f.processor.GetHistory(context.Background(), HistoryQuery{
			UserID:    "user_789",
			StartDate: &start,
			EndDate:   &end,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(5), page.Total)
		for _, txn := range page.Transactions {
			assert.False(t, txn.Timestamp.Before(start))
			assert.False(t, txn.Timestamp.After(end))
		}
	})

	t.Run("A single bound is ignored", func(t *testing.T) {
		page, err := f.processor.GetHistory(context.Background(), HistoryQuery{
			UserID:    "user_789",
			StartDate: &start,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(10), page.Total)
	})
}

func TestGetHistoryRepositoryError(t *testing.T) {
	f := newProcessorFixture()
	f.txns.ListErr = errors.New("query failed")

	page, err := f.processor.GetHistory(context.Background(), HistoryQuery{UserID: "user_789"})

	assert.Error(t, err)
	assert.Nil(t, page)
}
