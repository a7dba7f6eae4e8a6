package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
	userUseCase "github.com/amirhossein-jamali/transaction-service/internal/domain/usecase/user"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase *userUseCase.UserUseCase
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	userUseCase *userUseCase.UserUseCase,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// GetBalance handles the GET /users/:userId/balance endpoint
func (h *UserHandler) GetBalance(c *gin.Context) {
	userID := c.Param("userId")

	balance, err := h.userUseCase.GetBalance(c.Request.Context(), userID)
	if err != nil {
		if domainerr.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUserNotFound),
				Message: "User not found",
			})
			return
		}

		h.logger.Error("Error getting user balance", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
			Message: "Error getting user balance",
		})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		Balance: balance,
	})
}
