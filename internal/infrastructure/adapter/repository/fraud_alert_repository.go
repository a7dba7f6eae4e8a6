package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/model"
)

// FraudAlertRepository implements persistence.FraudAlertRepository using GORM
type FraudAlertRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewFraudAlertRepository creates a new FraudAlertRepository instance
func NewFraudAlertRepository(db *gorm.DB, logger coreport.Logger) *FraudAlertRepository {
	return &FraudAlertRepository{
		db:     db,
		logger: logger,
	}
}

// entityToModel converts an alert entity to a database model
func alertEntityToModel(alert *entity.FraudAlert) model.FraudAlert {
	return model.FraudAlert{
		ID:            alert.ID,
		TransactionID: alert.TransactionID,
		UserID:        alert.UserID,
		AlertType:     string(alert.AlertType),
		Amount:        alert.Amount,
		Description:   alert.Description,
		Status:        string(alert.Status),
		CreatedAt:     alert.CreatedAt,
	}
}

// modelToEntity converts an alert model to a domain entity
func alertModelToEntity(alertModel *model.FraudAlert) entity.FraudAlert {
	alert := entity.FraudAlert{
		ID:            alertModel.ID,
		TransactionID: alertModel.TransactionID,
		UserID:        alertModel.UserID,
		AlertType:     entity.AlertType(alertModel.AlertType),
		Amount:        alertModel.Amount,
		Description:   alertModel.Description,
		Status:        entity.AlertStatus(alertModel.Status),
		CreatedAt:     alertModel.CreatedAt,
	}
	if alertModel.Transaction.ID != 0 {
		txn := transactionModelToEntity(&alertModel.Transaction)
		alert.Transaction = &txn
	}
	return alert
}

// Create persists a new alert
func (r *FraudAlertRepository) Create(ctx context.Context, alert *entity.FraudAlert) error {
	alertModel := alertEntityToModel(alert)

	result := r.db.WithContext(ctx).Create(&alertModel)
	if result.Error != nil {
		r.logger.Error("Failed to create fraud alert", map[string]any{
			"transaction_id": alert.TransactionID,
			"alert_type":     string(alert.AlertType),
			"error":          result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	alert.ID = alertModel.ID
	return nil
}

// GetByID retrieves an alert by its internal ID
func (r *FraudAlertRepository) GetByID(ctx context.Context, id uint64) (*entity.FraudAlert, error) {
	var alertModel model.FraudAlert
	result := r.db.WithContext(ctx).First(&alertModel, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAlertNotFound
		}
		r.logger.Error("Failed to get fraud alert", map[string]any{
			"alert_id": id,
			"error":    result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	alert := alertModelToEntity(&alertModel)
	return &alert, nil
}

// List returns alerts newest first with the originating transaction attached
func (r *FraudAlertRepository) List(ctx context.Context, userID string) ([]entity.FraudAlert, error) {
	query := r.db.WithContext(ctx).Preload("Transaction")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var alertModels []model.FraudAlert
	if err := query.Order("created_at DESC").Find(&alertModels).Error; err != nil {
		r.logger.Error("Failed to list fraud alerts", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	alerts := make([]entity.FraudAlert, 0, len(alertModels))
	for i := range alertModels {
		alerts = append(alerts, alertModelToEntity(&alertModels[i]))
	}

	return alerts, nil
}

// Update persists a changed alert status
func (r *FraudAlertRepository) Update(ctx context.Context, alert *entity.FraudAlert) error {
	result := r.db.WithContext(ctx).Model(&model.FraudAlert{}).
		Where("id = ?", alert.ID).
		Update("status", string(alert.Status))

	if result.Error != nil {
		r.logger.Error("Failed to update fraud alert", map[string]any{
			"alert_id": alert.ID,
			"error":    result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		return errs.ErrAlertNotFound
	}

	return nil
}
