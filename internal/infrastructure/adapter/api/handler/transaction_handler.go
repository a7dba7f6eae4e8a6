package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
	transactionUseCase "github.com/amirhossein-jamali/transaction-service/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	processor *transactionUseCase.Processor
	logger    coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	processor *transactionUseCase.Processor,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		processor: processor,
		logger:    logger,
	}
}

// CreateTransaction handles the POST /transactions endpoint
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid transaction request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	var timestamp *time.Time
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid timestamp format, expected ISO 8601",
			})
			return
		}
		timestamp = &parsed
	}

	txn, err := h.processor.Create(c.Request.Context(), transactionUseCase.CreateRequest{
		TransactionID: req.TransactionID,
		UserID:        req.UserID,
		Amount:        req.Amount,
		Type:          entity.TransactionType(req.Type),
		Timestamp:     timestamp,
	})
	if err != nil {
		status := http.StatusInternalServerError
		message := "Error processing transaction"

		switch {
		case domainerr.IsValidationError(err):
			status = http.StatusBadRequest
			message = err.Error()
		case domainerr.IsDuplicateTransactionError(err):
			status = http.StatusConflict
			message = "Transaction with this ID already exists"
		}

		c.JSON(status, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: message,
		})
		return
	}

	c.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		Success: true,
		Message: "Transaction processed successfully",
		Data:    dto.FromTransaction(txn),
	})
}

// GetTransactionHistory handles the GET /transactions/history endpoint
func (h *TransactionHandler) GetTransactionHistory(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "Missing required query parameter: user_id",
		})
		return
	}

	query := transactionUseCase.HistoryQuery{UserID: userID}

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid start_date format, expected ISO 8601",
			})
			return
		}
		query.StartDate = &parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid end_date format, expected ISO 8601",
			})
			return
		}
		query.EndDate = &parsed
	}

	var err error
	if query.Page, err = parsePositiveInt(c.Query("page")); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid page, expected a positive integer",
		})
		return
	}
	if query.Limit, err = parsePositiveInt(c.Query("limit")); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid limit, expected a positive integer",
		})
		return
	}

	page, err := h.processor.GetHistory(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Error getting transaction history", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
			Message: "Error getting transaction history",
		})
		return
	}

	c.JSON(http.StatusOK, dto.TransactionHistoryResponse{
		Transactions: dto.FromTransactions(page.Transactions),
		Total:        page.Total,
		Page:         page.Page,
		Limit:        page.Limit,
		TotalPages:   page.TotalPages,
	})
}

// GetTransactionByID handles the GET /transactions/:transactionId endpoint
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transactionID := c.Param("transactionId")

	txn, err := h.processor.GetByTransactionID(c.Request.Context(), transactionID)
	if err != nil {
		if domainerr.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrTransactionNotFound),
				Message: "Transaction not found",
			})
			return
		}

		h.logger.Error("Error getting transaction", map[string]any{
			"transactionId": transactionID,
			"error":         err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
			Message: "Error getting transaction",
		})
		return
	}

	c.JSON(http.StatusOK, dto.TransactionResponse{
		Success: true,
		Data:    dto.FromTransaction(txn),
	})
}

// parsePositiveInt parses an optional positive-integer query parameter.
// An empty value returns 0 so the use case applies its defaults.
func parsePositiveInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return 0, domainerr.ErrInvalidRequest
	}
	return val, nil
}
