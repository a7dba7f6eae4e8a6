package user

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-service/internal/domain/port/persistence"
)

// UserUseCase handles user-related business logic
type UserUseCase struct {
	userRepo     persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	userRepo persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// FindByUserID returns the user with the given external ID
func (u *UserUseCase) FindByUserID(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	return u.userRepo.GetByUserID(ctx, userID)
}

// GetOrCreate returns the existing user or lazily registers one with
// balance 0 and active=true
func (u *UserUseCase) GetOrCreate(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	return u.userRepo.GetOrCreate(ctx, userID)
}

// GetBalance returns the user's current balance
func (u *UserUseCase) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	user, err := u.FindByUserID(ctx, userID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return user.Balance, nil
}

// UpdateBalance overwrites the user's stored balance
func (u *UserUseCase) UpdateBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	if err := u.userRepo.UpdateBalance(ctx, userID, balance); err != nil {
		u.logger.Error("Failed to update user balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return err
	}

	u.logger.Debug("User balance updated", map[string]any{
		"user_id": userID,
		"balance": balance.String(),
	})
	return nil
}

// CreateUser explicitly registers a user with the given initial balance.
// Unlike GetOrCreate it fails when the user already exists.
func (u *UserUseCase) CreateUser(ctx context.Context, userID string, initialBalance decimal.Decimal) (*entity.User, error) {
	user, err := entity.NewUser(userID, initialBalance, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		u.logger.Error("Failed to create user", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	u.logger.Info("User created", map[string]any{
		"user_id":         userID,
		"initial_balance": initialBalance.String(),
	})
	return user, nil
}
