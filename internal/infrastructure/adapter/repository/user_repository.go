package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/model"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// modelToEntity converts a user model to a domain entity
func userModelToEntity(userModel *model.User) *entity.User {
	return &entity.User{
		ID:        userModel.ID,
		UserID:    userModel.UserID,
		Balance:   userModel.Balance,
		IsActive:  userModel.IsActive,
		CreatedAt: userModel.CreatedAt,
		UpdatedAt: userModel.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if isDuplicateKeyError(err) {
		return errs.ErrDuplicateUser
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByUserID retrieves a user by external ID
func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&userModel)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, userID)
	}

	return userModelToEntity(&userModel), nil
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		UserID:    user.UserID,
		Balance:   user.Balance,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, user.UserID)
	}

	user.ID = userModel.ID

	r.logger.Info("User created", map[string]any{
		"user_id": user.UserID,
		"balance": user.Balance.String(),
	})
	return nil
}

// GetOrCreate returns the existing user or registers one with balance 0
func (r *UserRepository) GetOrCreate(ctx context.Context, userID string) (*entity.User, error) {
	return r.getOrCreate(ctx, userID, false)
}

// GetOrCreateForUpdate behaves like GetOrCreate with a row-level lock held
// until the enclosing database transaction finishes
func (r *UserRepository) GetOrCreateForUpdate(ctx context.Context, userID string) (*entity.User, error) {
	return r.getOrCreate(ctx, userID, true)
}

func (r *UserRepository) getOrCreate(ctx context.Context, userID string, forUpdate bool) (*entity.User, error) {
	userModel, err := r.findUser(ctx, userID, forUpdate)
	if err == nil {
		return userModelToEntity(userModel), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.handleDatabaseError("getting user", err, userID)
	}

	user, err := entity.NewUser(userID, decimal.Zero, r.timeProvider)
	if err != nil {
		return nil, err
	}

	// A concurrent request may insert the same user between the read and
	// this insert. DO NOTHING on conflict keeps the enclosing transaction
	// usable, so the follow-up read returns the winner's row either way.
	newModel := model.User{
		UserID:    user.UserID,
		Balance:   user.Balance,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	insert := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&newModel)
	if insert.Error != nil {
		return nil, r.handleDatabaseError("creating user", insert.Error, userID)
	}
	if insert.RowsAffected > 0 {
		r.logger.Info("User registered lazily on first transaction", map[string]any{
			"user_id": userID,
		})
	}

	userModel, err = r.findUser(ctx, userID, forUpdate)
	if err != nil {
		return nil, r.handleDatabaseError("getting user", err, userID)
	}
	return userModelToEntity(userModel), nil
}

// findUser reads a user row, locked when forUpdate is set
func (r *UserRepository) findUser(ctx context.Context, userID string, forUpdate bool) (*model.User, error) {
	query := r.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var userModel model.User
	if err := query.Where("user_id = ?", userID).First(&userModel).Error; err != nil {
		return nil, err
	}
	return &userModel, nil
}

// UpdateBalance overwrites the user's stored balance
func (r *UserRepository) UpdateBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":    balance,
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating balance", result.Error, userID)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("User not found during balance update", map[string]any{
			"user_id": userID,
		})
		return errs.ErrUserNotFound
	}

	return nil
}
