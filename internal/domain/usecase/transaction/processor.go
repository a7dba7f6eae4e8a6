package transaction

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-service/internal/domain/port/persistence"
)

// FraudChecker is the post-commit hook the processor hands committed
// transactions to. Its outcome never affects the transaction result.
type FraudChecker interface {
	CheckTransaction(ctx context.Context, txn *entity.Transaction) error
}

// CreateRequest represents a validated candidate transaction
type CreateRequest struct {
	TransactionID string // optional; generated when empty
	UserID        string
	Amount        decimal.Decimal
	Type          entity.TransactionType
	Timestamp     *time.Time // optional; defaults to now
}

// Processor orchestrates transaction creation: validation, balance
// computation, atomic persistence of the ledger row and the balance update,
// and post-commit fraud evaluation dispatch.
type Processor struct {
	uow          persistence.UnitOfWork
	txnRepo      persistence.TransactionRepository
	validator    *Validator
	fraudChecker FraudChecker
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	fraudTimeout time.Duration

	// In-flight fraud evaluations, drained on shutdown
	pending sync.WaitGroup
}

// NewProcessor creates a new transaction Processor. maxAmount is the
// per-transaction cap; fraudTimeout bounds each post-commit evaluation.
func NewProcessor(
	uow persistence.UnitOfWork,
	txnRepo persistence.TransactionRepository,
	fraudChecker FraudChecker,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	maxAmount decimal.Decimal,
	fraudTimeout time.Duration,
) *Processor {
	return &Processor{
		uow:          uow,
		txnRepo:      txnRepo,
		validator:    NewValidator(timeProvider, maxAmount),
		fraudChecker: fraudChecker,
		timeProvider: timeProvider,
		logger:       logger,
		fraudTimeout: fraudTimeout,
	}
}

// Create processes a candidate transaction end to end and returns the
// committed record. The ledger insert and the user's balance update are one
// atomic unit: either both are visible afterwards or neither is.
func (p *Processor) Create(ctx context.Context, req CreateRequest) (*entity.Transaction, error) {
	transactionID := req.TransactionID
	if transactionID == "" {
		transactionID = "txn_" + uuid.NewString()
	}

	timestamp := p.timeProvider.Now()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	p.logger.Info("Transaction processing started", map[string]any{
		"transaction_id": transactionID,
		"user_id":        req.UserID,
		"amount":         req.Amount.String(),
		"type":           string(req.Type),
	})

	txn, err := p.process(ctx, transactionID, req, timestamp)
	if err != nil {
		p.logger.Error("Transaction processing failed", map[string]any{
			"transaction_id": transactionID,
			"user_id":        req.UserID,
			"error":          err.Error(),
		})
		return nil, err
	}

	p.logger.Info("Transaction processed successfully", map[string]any{
		"transaction_id": txn.TransactionID,
		"user_id":        txn.UserID,
		"balance_after":  txn.BalanceAfter.String(),
	})

	p.dispatchFraudCheck(*txn)

	return txn, nil
}

// process runs validation and the atomic unit of work
func (p *Processor) process(
	ctx context.Context,
	transactionID string,
	req CreateRequest,
	timestamp time.Time,
) (*entity.Transaction, error) {
	if err := p.validator.Validate(transactionID, req.UserID, req.Amount, req.Type, timestamp); err != nil {
		return nil, err
	}

	txn, err := entity.NewTransaction(transactionID, req.UserID, req.Amount, req.Type, timestamp, p.timeProvider)
	if err != nil {
		return nil, err
	}

	txCtx, err := p.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := p.uow.Rollback(txCtx); rbErr != nil {
				p.logger.Error("Failed to roll back unit of work", map[string]any{
					"transaction_id": transactionID,
					"error":          rbErr.Error(),
				})
			}
		}
	}()

	userRepo := p.uow.UserRepository(txCtx)

	// Row-level lock on the user closes the read-modify-write race between
	// concurrent requests for the same account.
	user, err := userRepo.GetOrCreateForUpdate(txCtx, req.UserID)
	if err != nil {
		return nil, err
	}

	if txn.IsDebit() && !user.CanWithdraw(req.Amount) {
		return nil, errs.NewInsufficientFundsError(req.UserID, req.Amount, user.Balance)
	}

	newBalance := txn.BalanceFrom(user.Balance)
	txn.BalanceAfter = newBalance

	if err := p.uow.TransactionRepository(txCtx).Create(txCtx, txn); err != nil {
		return nil, err
	}

	if err := userRepo.UpdateBalance(txCtx, req.UserID, newBalance); err != nil {
		return nil, err
	}

	if err := p.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}
	committed = true

	p.logger.Debug("User balance updated", map[string]any{
		"user_id":     req.UserID,
		"old_balance": user.Balance.String(),
		"new_balance": newBalance.String(),
	})

	return txn, nil
}

// dispatchFraudCheck hands the committed transaction to the fraud checker
// on its own goroutine with a bounded deadline. Failures and panics are
// logged and swallowed; the caller already holds the committed result.
func (p *Processor) dispatchFraudCheck(txn entity.Transaction) {
	if p.fraudChecker == nil {
		return
	}

	p.pending.Add(1)
	go func() {
		defer p.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("Panic recovered in fraud evaluation", map[string]any{
					"transaction_id": txn.TransactionID,
					"panic":          fmt.Sprintf("%v", r),
				})
			}
		}()

		ctx, cancel := p.timeProvider.WithTimeout(context.Background(), p.fraudTimeout)
		defer cancel()

		if err := p.fraudChecker.CheckTransaction(ctx, &txn); err != nil {
			p.logger.Warn("Fraud evaluation failed", map[string]any{
				"transaction_id": txn.TransactionID,
				"user_id":        txn.UserID,
				"error":          err.Error(),
			})
		}
	}()
}

// Wait blocks until all in-flight fraud evaluations have finished. Used for
// graceful shutdown.
func (p *Processor) Wait() {
	p.pending.Wait()
}

// GetByTransactionID performs a point lookup by external transaction ID
func (p *Processor) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	return p.txnRepo.GetByTransactionID(ctx, transactionID)
}
