package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-service/internal/testutil"
)

func TestNewFraudAlert(t *testing.T) {
	fixedTime := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	tp := testutil.NewFixedTimeProvider(fixedTime)

	txn := &entity.Transaction{
		TransactionID: "txn_1",
		UserID:        "user_789",
		Amount:        decimal.NewFromInt(15000),
	}

	t.Run("High amount alert", func(t *testing.T) {
		alert := entity.NewFraudAlert(txn, entity.AlertHighAmount, tp)

		assert.Equal(t, "txn_1", alert.TransactionID)
		assert.Equal(t, "user_789", alert.UserID)
		assert.Equal(t, entity.AlertHighAmount, alert.AlertType)
		assert.True(t, alert.Amount.Equal(decimal.NewFromInt(15000)))
		assert.Equal(t, "High-amount transaction: $15000", alert.Description)
		assert.Equal(t, entity.AlertPending, alert.Status)
		assert.Equal(t, fixedTime, alert.CreatedAt)
	})

	t.Run("Rapid succession alert", func(t *testing.T) {
		alert := entity.NewFraudAlert(txn, entity.AlertRapidSuccession, tp)

		assert.Equal(t, entity.AlertRapidSuccession, alert.AlertType)
		assert.Equal(t, "Multiple transactions within a short time window", alert.Description)
	})
}

func TestFraudAlertResolve(t *testing.T) {
	t.Run("Resolve as legitimate", func(t *testing.T) {
		alert := &entity.FraudAlert{Status: entity.AlertPending}

		require.NoError(t, alert.Resolve(entity.ResolutionLegitimate))
		assert.Equal(t, entity.AlertResolvedLegitimate, alert.Status)
	})

	t.Run("Resolve as fraudulent", func(t *testing.T) {
		alert := &entity.FraudAlert{Status: entity.AlertPending}

		require.NoError(t, alert.Resolve(entity.ResolutionFraudulent))
		assert.Equal(t, entity.AlertResolvedFraudulent, alert.Status)
	})

	t.Run("Re-resolving overwrites the previous verdict", func(t *testing.T) {
		alert := &entity.FraudAlert{Status: entity.AlertResolvedLegitimate}

		require.NoError(t, alert.Resolve(entity.ResolutionFraudulent))
		assert.Equal(t, entity.AlertResolvedFraudulent, alert.Status)
	})

	t.Run("Unknown resolution is rejected", func(t *testing.T) {
		alert := &entity.FraudAlert{Status: entity.AlertPending}

		err := alert.Resolve("maybe")
		assert.ErrorIs(t, err, errs.ErrInvalidResolution)
		assert.Equal(t, entity.AlertPending, alert.Status)
	})
}
