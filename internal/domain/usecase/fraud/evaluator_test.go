package fraud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/transaction-service/internal/testutil"
)

type evaluatorFixture struct {
	evaluator *Evaluator
	alerts    *testutil.FakeFraudAlertRepository
	txns      *testutil.FakeTransactionRepository
	tp        *testutil.FixedTimeProvider
}

func newEvaluatorFixture() *evaluatorFixture {
	alerts := testutil.NewFakeFraudAlertRepository()
	txns := testutil.NewFakeTransactionRepository()
	tp := testutil.NewFixedTimeProvider(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC))

	evaluator := NewEvaluator(alerts, txns, tp, logger.NewNoopLogger(), DefaultConfig())

	return &evaluatorFixture{
		evaluator: evaluator,
		alerts:    alerts,
		txns:      txns,
		tp:        tp,
	}
}

func committedTxn(f *evaluatorFixture, id string, amount decimal.Decimal, offset time.Duration) entity.Transaction {
	return entity.Transaction{
		TransactionID: id,
		UserID:        "user_789",
		Amount:        amount,
		Type:          entity.TypeDeposit,
		Timestamp:     f.tp.Now().Add(offset),
		Status:        entity.StatusCompleted,
	}
}

func TestCheckTransactionHighAmount(t *testing.T) {
	t.Run("At the threshold", func(t *testing.T) {
		f := newEvaluatorFixture()
		txn := committedTxn(f, "txn_1", decimal.NewFromInt(10000), 0)
		f.txns.Seed(txn)

		require.NoError(t, f.evaluator.CheckTransaction(context.Background(), &txn))

		alerts := f.alerts.Alerts()
		require.Len(t, alerts, 1)
		assert.Equal(t, entity.AlertHighAmount, alerts[0].AlertType)
		assert.Equal(t, "txn_1", alerts[0].TransactionID)
		assert.Equal(t, entity.AlertPending, alerts[0].Status)
		assert.True(t, alerts[0].Amount.Equal(decimal.NewFromInt(10000)))
	})

	t.Run("Above the threshold", func(t *testing.T) {
		f := newEvaluatorFixture()
		txn := committedTxn(f, "txn_1", decimal.NewFromFloat(10000.01), 0)
		f.txns.Seed(txn)

		require.NoError(t, f.evaluator.CheckTransaction(context.Background(), &txn))
		assert.Len(t, f.alerts.Alerts(), 1)
	})

	t.Run("Below the threshold", func(t *testing.T) {
		f := newEvaluatorFixture()
		txn := committedTxn(f, "txn_1", decimal.NewFromFloat(9999.99), 0)
		f.txns.Seed(txn)

		require.NoError(t, f.evaluator.CheckTransaction(context.Background(), &txn))
		assert.Empty(t, f.alerts.Alerts())
	})
}

func TestCheckTransactionRapidSuccession(t *testing.T) {
	t.Run("Three completed transactions inside the window", func(t *testing.T) {
		f := newEvaluatorFixture()
		f.txns.Seed(committedTxn(f, "txn_1", decimal.NewFromInt(10), -2*time.Minute))
		f.txns.Seed(committedTxn(f, "txn_2", decimal.NewFromInt(10), -time.Minute))
		newest := committedTxn(f, "txn_3", decimal.NewFromInt(10), 0)
		f.txns.Seed(newest)

		require.NoError(t, f.evaluator.CheckTransaction(context.Background(), &newest))

		alerts := f.alerts.Alerts()
		require.Len(t, alerts, 1)
		assert.Equal(t, entity.AlertRapidSuccession, alerts[0].AlertType)
		assert.Equal(t, "txn_3", alerts[0].TransactionID)
	})

	t.Run("Only two transactions inside the window", func(t *testing.T) {
		f := newEvaluatorFixture()
		f.txns.Seed(committedTxn(f, "txn_1", decimal.NewFromInt(10), -10*time.Minute))
		f.txns.Seed(committedTxn(f, "txn_2", decimal.NewFromInt(10), -time.Minute))
		newest := committedTxn(f, "txn_3", decimal.NewFromInt(10), 0)
		f.txns.Seed(newest)

		require.NoError(t, f.evaluator.CheckTransaction(context.Background(), &newest))
		assert.Empty(t, f.alerts.Alerts())
	})

	t.Run("Other users' transactions don't count", func(t *testing.T) {
		f := newEvaluatorFixture()
		other := committedTxn(f, "txn_other", decimal.NewFromInt(10), -time.Minute)
		other.UserID = "user_other"
		f.txns.Seed(other)
		f.txns.Seed(committedTxn(f, "txn_1", decimal.NewFromInt(10), -2*time.Minute))
		newest := committedTxn(f, "txn_2", decimal.NewFromInt(10), 0)
		f.txns.Seed(newest)

		require.NoError(t, f.evaluator.CheckTransaction(context.Background(), &newest))
		assert.Empty(t, f.alerts.Alerts())
	})
}

func TestCheckTransactionBothHeuristics(t *testing.T) {
	f := newEvaluatorFixture()
	f.txns.Seed(committedTxn(f, "txn_1", decimal.NewFromInt(10), -2*time.Minute))
	f.txns.Seed(committedTxn(f, "txn_2", decimal.NewFromInt(10), -time.Minute))
	newest := committedTxn(f, "txn_3", decimal.NewFromInt(20000), 0)
	f.txns.Seed(newest)

	require.NoError(t, f.evaluator.CheckTransaction(context.Background(), &newest))

	alerts := f.alerts.Alerts()
	require.Len(t, alerts, 2)

	types := []entity.AlertType{alerts[0].AlertType, alerts[1].AlertType}
	assert.Contains(t, types, entity.AlertHighAmount)
	assert.Contains(t, types, entity.AlertRapidSuccession)
}

func TestCheckTransactionAlertPersistFailure(t *testing.T) {
	f := newEvaluatorFixture()
	f.alerts.CreateErr = errors.New("insert failed")
	txn := committedTxn(f, "txn_1", decimal.NewFromInt(20000), 0)
	f.txns.Seed(txn)

	err := f.evaluator.CheckTransaction(context.Background(), &txn)

	assert.Error(t, err)
}

func TestListAlerts(t *testing.T) {
	f := newEvaluatorFixture()
	now := f.tp.Now()
	f.alerts.Seed(entity.FraudAlert{UserID: "user_789", AlertType: entity.AlertHighAmount, Status: entity.AlertPending, CreatedAt: now.Add(-time.Hour)})
	f.alerts.Seed(entity.FraudAlert{UserID: "user_789", AlertType: entity.AlertRapidSuccession, Status: entity.AlertPending, CreatedAt: now})
	f.alerts.Seed(entity.FraudAlert{UserID: "user_other", AlertType: entity.AlertHighAmount, Status: entity.AlertPending, CreatedAt: now.Add(-time.Minute)})

	t.Run("All users", func(t *testing.T) {
		alerts, err := f.evaluator.ListAlerts(context.Background(), "")

		require.NoError(t, err)
		require.Len(t, alerts, 3)
		// Newest first
		assert.True(t, alerts[0].CreatedAt.After(alerts[1].CreatedAt))
		assert.True(t, alerts[1].CreatedAt.After(alerts[2].CreatedAt))
	})

	t.Run("Filtered by user", func(t *testing.T) {
		alerts, err := f.evaluator.ListAlerts(context.Background(), "user_789")

		require.NoError(t, err)
		require.Len(t, alerts, 2)
		for _, alert := range alerts {
			assert.Equal(t, "user_789", alert.UserID)
		}
	})
}

func TestResolve(t *testing.T) {
	t.Run("Resolve as fraudulent", func(t *testing.T) {
		f := newEvaluatorFixture()
		f.alerts.Seed(entity.FraudAlert{ID: 1, UserID: "user_789", Status: entity.AlertPending})

		alert, err := f.evaluator.Resolve(context.Background(), 1, entity.ResolutionFraudulent)

		require.NoError(t, err)
		assert.Equal(t, entity.AlertResolvedFraudulent, alert.Status)

		stored, err := f.alerts.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, entity.AlertResolvedFraudulent, stored.Status)
	})

	t.Run("Resolve as legitimate", func(t *testing.T) {
		f := newEvaluatorFixture()
		f.alerts.Seed(entity.FraudAlert{ID: 1, UserID: "user_789", Status: entity.AlertPending})

		alert, err := f.evaluator.Resolve(context.Background(), 1, entity.ResolutionLegitimate)

		require.NoError(t, err)
		assert.Equal(t, entity.AlertResolvedLegitimate, alert.Status)
	})

	t.Run("Unknown alert", func(t *testing.T) {
		f := newEvaluatorFixture()

		alert, err := f.evaluator.Resolve(context.Background(), 99, entity.ResolutionFraudulent)

		assert.ErrorIs(t, err, errs.ErrAlertNotFound)
		assert.Nil(t, alert)
	})

	t.Run("Invalid resolution", func(t *testing.T) {
		f := newEvaluatorFixture()
		f.alerts.Seed(entity.FraudAlert{ID: 1, UserID: "user_789", Status: entity.AlertPending})

		alert, err := f.evaluator.Resolve(context.Background(), 1, "maybe")

		assert.ErrorIs(t, err, errs.ErrInvalidResolution)
		assert.Nil(t, alert)
	})
}
