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

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	tp := testutil.NewFixedTimeProvider(fixedTime)

	t.Run("Valid user creation", func(t *testing.T) {
		user, err := entity.NewUser("user_789", decimal.NewFromInt(100), tp)

		require.NoError(t, err)
		assert.Equal(t, "user_789", user.UserID)
		assert.True(t, user.Balance.Equal(decimal.NewFromInt(100)))
		assert.True(t, user.IsActive)
		assert.Equal(t, fixedTime, user.CreatedAt)
		assert.Equal(t, fixedTime, user.UpdatedAt)
	})

	t.Run("Zero initial balance", func(t *testing.T) {
		user, err := entity.NewUser("user_790", decimal.Zero, tp)

		require.NoError(t, err)
		assert.True(t, user.Balance.IsZero())
	})

	t.Run("Empty user ID should return error", func(t *testing.T) {
		user, err := entity.NewUser("", decimal.NewFromInt(100), tp)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, user)
	})

	t.Run("Negative initial balance should return error", func(t *testing.T) {
		user, err := entity.NewUser("user_791", decimal.NewFromInt(-1), tp)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Nil(t, user)
	})
}

func TestUserCanWithdraw(t *testing.T) {
	user := &entity.User{Balance: decimal.NewFromInt(50)}

	assert.True(t, user.CanWithdraw(decimal.NewFromInt(50)))
	assert.True(t, user.CanWithdraw(decimal.NewFromInt(25)))
	assert.False(t, user.CanWithdraw(decimal.NewFromInt(51)))
	assert.False(t, user.CanWithdraw(decimal.NewFromFloat(50.01)))
}

func TestUserSetBalance(t *testing.T) {
	initialTime := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	tp := testutil.NewFixedTimeProvider(initialTime)

	user, err := entity.NewUser("user_789", decimal.NewFromInt(100), tp)
	require.NoError(t, err)

	tp.Advance(time.Hour)
	user.SetBalance(decimal.NewFromInt(200), tp)

	assert.True(t, user.Balance.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, initialTime, user.CreatedAt)
	assert.Equal(t, initialTime.Add(time.Hour), user.UpdatedAt)
}
