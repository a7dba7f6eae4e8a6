package user

import (
	"context"
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

func newUserUseCase() (*UserUseCase, *testutil.FakeUserRepository) {
	repo := testutil.NewFakeUserRepository()
	tp := testutil.NewFixedTimeProvider(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC))
	return NewUserUseCase(repo, tp, logger.NewNoopLogger()), repo
}

func TestFindByUserID(t *testing.T) {
	uc, repo := newUserUseCase()
	repo.Seed(entity.User{UserID: "user_789", Balance: decimal.NewFromInt(100), IsActive: true})

	t.Run("Existing user", func(t *testing.T) {
		user, err := uc.FindByUserID(context.Background(), "user_789")

		require.NoError(t, err)
		assert.Equal(t, "user_789", user.UserID)
	})

	t.Run("Unknown user", func(t *testing.T) {
		user, err := uc.FindByUserID(context.Background(), "user_unknown")

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		assert.Nil(t, user)
	})

	t.Run("Empty user ID", func(t *testing.T) {
		user, err := uc.FindByUserID(context.Background(), "")

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, user)
	})
}

func TestGetOrCreate(t *testing.T) {
	uc, repo := newUserUseCase()
	repo.Seed(entity.User{UserID: "user_789", Balance: decimal.NewFromInt(100), IsActive: true})

	t.Run("Returns existing user", func(t *testing.T) {
		user, err := uc.GetOrCreate(context.Background(), "user_789")

		require.NoError(t, err)
		assert.True(t, user.Balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("Creates fresh user with zero balance", func(t *testing.T) {
		user, err := uc.GetOrCreate(context.Background(), "user_new")

		require.NoError(t, err)
		assert.True(t, user.Balance.IsZero())
		assert.True(t, user.IsActive)
	})
}

func TestGetBalance(t *testing.T) {
	uc, repo := newUserUseCase()
	repo.Seed(entity.User{UserID: "user_789", Balance: decimal.NewFromFloat(42.50), IsActive: true})

	t.Run("Existing user", func(t *testing.T) {
		balance, err := uc.GetBalance(context.Background(), "user_789")

		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromFloat(42.50)))
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := uc.GetBalance(context.Background(), "user_unknown")

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestUpdateBalance(t *testing.T) {
	uc, repo := newUserUseCase()
	repo.Seed(entity.User{UserID: "user_789", Balance: decimal.NewFromInt(100), IsActive: true})

	t.Run("Overwrites the stored balance", func(t *testing.T) {
		err := uc.UpdateBalance(context.Background(), "user_789", decimal.NewFromInt(250))

		require.NoError(t, err)
		assert.True(t, repo.Balance("user_789").Equal(decimal.NewFromInt(250)))
	})

	t.Run("Unknown user", func(t *testing.T) {
		err := uc.UpdateBalance(context.Background(), "user_unknown", decimal.NewFromInt(1))

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestCreateUser(t *testing.T) {
	uc, _ := newUserUseCase()

	t.Run("Creates user with initial balance", func(t *testing.T) {
		user, err := uc.CreateUser(context.Background(), "user_789", decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.True(t, user.Balance.Equal(decimal.NewFromInt(500)))
		assert.NotZero(t, user.ID)
	})

	t.Run("Duplicate user is rejected", func(t *testing.T) {
		_, err := uc.CreateUser(context.Background(), "user_789", decimal.Zero)

		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
	})

	t.Run("Negative initial balance is rejected", func(t *testing.T) {
		_, err := uc.CreateUser(context.Background(), "user_new", decimal.NewFromInt(-10))

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}
