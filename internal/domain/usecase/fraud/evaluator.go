package fraud

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-service/internal/domain/port/persistence"
)

// Config holds the tunable thresholds for the fraud heuristics
type Config struct {
	// HighAmountThreshold raises a high_amount alert for any transaction
	// whose amount reaches it
	HighAmountThreshold decimal.Decimal

	// RapidSuccessionWindow is the look-back window for the
	// rapid_succession heuristic
	RapidSuccessionWindow time.Duration

	// RapidSuccessionCount is the number of completed transactions inside
	// the window that triggers a rapid_succession alert
	RapidSuccessionCount int
}

// DefaultConfig returns the documented default thresholds
func DefaultConfig() Config {
	return Config{
		HighAmountThreshold:   decimal.NewFromInt(10000),
		RapidSuccessionWindow: 5 * time.Minute,
		RapidSuccessionCount:  3,
	}
}

// Evaluator runs heuristic fraud checks on committed transactions and owns
// the alert review operations. Evaluation is advisory: it runs strictly
// after commit and its outcome never affects the owning transaction.
type Evaluator struct {
	alertRepo    persistence.FraudAlertRepository
	txnRepo      persistence.TransactionRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	config       Config
}

// NewEvaluator creates a new fraud Evaluator
func NewEvaluator(
	alertRepo persistence.FraudAlertRepository,
	txnRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
) *Evaluator {
	logger.Info("Fraud evaluator configured", map[string]any{
		"high_amount_threshold":   config.HighAmountThreshold.String(),
		"rapid_succession_window": config.RapidSuccessionWindow.String(),
		"rapid_succession_count":  config.RapidSuccessionCount,
	})

	return &Evaluator{
		alertRepo:    alertRepo,
		txnRepo:      txnRepo,
		timeProvider: timeProvider,
		logger:       logger,
		config:       config,
	}
}

// CheckTransaction evaluates a committed transaction against all heuristics
// and persists one pending alert per triggered rule. Alerts are persisted
// independently; a failure on one does not skip the others.
func (e *Evaluator) CheckTransaction(ctx context.Context, txn *entity.Transaction) error {
	var triggered []entity.AlertType

	if txn.Amount.GreaterThanOrEqual(e.config.HighAmountThreshold) {
		triggered = append(triggered, entity.AlertHighAmount)
		e.logger.Warn("High-amount transaction detected", map[string]any{
			"transaction_id": txn.TransactionID,
			"user_id":        txn.UserID,
			"amount":         txn.Amount.String(),
		})
	}

	rapid, err := e.checkRapidSuccession(ctx, txn)
	if err != nil {
		return err
	}
	if rapid {
		triggered = append(triggered, entity.AlertRapidSuccession)
	}

	var firstErr error
	for _, alertType := range triggered {
		alert := entity.NewFraudAlert(txn, alertType, e.timeProvider)
		if err := e.alertRepo.Create(ctx, alert); err != nil {
			e.logger.Error("Failed to persist fraud alert", map[string]any{
				"transaction_id": txn.TransactionID,
				"alert_type":     string(alertType),
				"error":          err.Error(),
			})
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		e.logger.Warn("Fraud alert created", map[string]any{
			"alert_id":       alert.ID,
			"alert_type":     string(alertType),
			"transaction_id": txn.TransactionID,
			"user_id":        txn.UserID,
		})
	}

	return firstErr
}

// checkRapidSuccession loads the user's completed transactions inside the
// look-back window anchored at the transaction's own timestamp
func (e *Evaluator) checkRapidSuccession(ctx context.Context, txn *entity.Transaction) (bool, error) {
	windowStart := txn.Timestamp.Add(-e.config.RapidSuccessionWindow)

	recent, err := e.txnRepo.ListCompletedAfter(ctx, txn.UserID, windowStart)
	if err != nil {
		return false, fmt.Errorf("failed to load recent transactions: %w", err)
	}

	if len(recent) < e.config.RapidSuccessionCount {
		return false, nil
	}

	e.logger.Warn("Rapid transaction succession detected", map[string]any{
		"user_id":        txn.UserID,
		"transaction_id": txn.TransactionID,
		"count":          len(recent),
		"window":         e.config.RapidSuccessionWindow.String(),
	})
	return true, nil
}

// ListAlerts returns alerts newest first with the originating transaction
// attached. An empty userID lists alerts for all users.
func (e *Evaluator) ListAlerts(ctx context.Context, userID string) ([]entity.FraudAlert, error) {
	return e.alertRepo.List(ctx, userID)
}

// Resolve transitions a pending alert to the given verdict. Resolving an
// already-resolved alert overwrites the previous verdict.
func (e *Evaluator) Resolve(ctx context.Context, alertID uint64, resolution entity.Resolution) (*entity.FraudAlert, error) {
	alert, err := e.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}

	if err := alert.Resolve(resolution); err != nil {
		return nil, err
	}

	if err := e.alertRepo.Update(ctx, alert); err != nil {
		return nil, err
	}

	e.logger.Info("Fraud alert resolved", map[string]any{
		"alert_id":   alert.ID,
		"resolution": string(resolution),
		"status":     string(alert.Status),
	})
	return alert, nil
}
