package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-service/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// entityToModel converts a transaction entity to a database model
func transactionEntityToModel(transaction *entity.Transaction) model.Transaction {
	return model.Transaction{
		TransactionID: transaction.TransactionID,
		UserID:        transaction.UserID,
		Amount:        transaction.Amount,
		Type:          string(transaction.Type),
		Timestamp:     transaction.Timestamp,
		BalanceAfter:  transaction.BalanceAfter,
		Status:        string(transaction.Status),
		CreatedAt:     transaction.CreatedAt,
	}
}

// modelToEntity converts a transaction model to a domain entity
func transactionModelToEntity(transactionModel *model.Transaction) entity.Transaction {
	txn := entity.Transaction{
		ID:            transactionModel.ID,
		TransactionID: transactionModel.TransactionID,
		UserID:        transactionModel.UserID,
		Amount:        transactionModel.Amount,
		Type:          entity.TransactionType(transactionModel.Type),
		Timestamp:     transactionModel.Timestamp,
		BalanceAfter:  transactionModel.BalanceAfter,
		Status:        entity.TransactionStatus(transactionModel.Status),
		CreatedAt:     transactionModel.CreatedAt,
	}
	if transactionModel.User.ID != 0 {
		txn.User = userModelToEntity(&transactionModel.User)
	}
	return txn
}

// Create appends a new transaction record to the ledger
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := transactionEntityToModel(transaction)

	result := r.db.WithContext(ctx).Create(&transactionModel)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate transaction detected", map[string]any{
				"transaction_id": transaction.TransactionID,
				"user_id":        transaction.UserID,
			})
			return errs.ErrDuplicateTransaction
		}

		r.logger.Error("Failed to create transaction", map[string]any{
			"transaction_id": transaction.TransactionID,
			"user_id":        transaction.UserID,
			"error":          result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transaction.ID = transactionModel.ID
	return nil
}

// GetByTransactionID retrieves a transaction by its external ID
func (r *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).
		Preload("User").
		Where("transaction_id = ?", transactionID).
		First(&transactionModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Warn("Transaction not found", map[string]any{
				"transaction_id": transactionID,
			})
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to get transaction", map[string]any{
			"transaction_id": transactionID,
			"error":          result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	txn := transactionModelToEntity(&transactionModel)
	return &txn, nil
}

// ListByUser returns one page of the user's transactions newest first plus
// the total count matching the filter
func (r *TransactionRepository) ListByUser(ctx context.Context, filter persistence.HistoryFilter) ([]entity.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("timestamp BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	var transactionModels []model.Transaction
	err := query.
		Order("timestamp DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&transactionModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	transactions := make([]entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, transactionModelToEntity(&transactionModels[i]))
	}

	return transactions, total, nil
}

// ListCompletedAfter returns the user's completed transactions with
// timestamp strictly after the given instant, newest first
func (r *TransactionRepository) ListCompletedAfter(ctx context.Context, userID string, after time.Time) ([]entity.Transaction, error) {
	var transactionModels []model.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp > ? AND status = ?", userID, after, string(entity.StatusCompleted)).
		Order("timestamp DESC").
		Find(&transactionModels).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	transactions := make([]entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, transactionModelToEntity(&transactionModels[i]))
	}

	return transactions, nil
}
