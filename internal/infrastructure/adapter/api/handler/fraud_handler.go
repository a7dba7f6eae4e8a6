package handler

import (
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/transaction-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
	fraudUseCase "github.com/amirhossein-jamali/transaction-service/internal/domain/usecase/fraud"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// FraudHandler handles fraud-detection HTTP requests
type FraudHandler struct {
	evaluator *fraudUseCase.Evaluator
	logger    coreport.Logger
}

// NewFraudHandler creates a new fraud handler instance
func NewFraudHandler(
	evaluator *fraudUseCase.Evaluator,
	logger coreport.Logger,
) *FraudHandler {
	return &FraudHandler{
		evaluator: evaluator,
		logger:    logger,
	}
}

// GetAlerts handles the GET /fraud-detection/alerts endpoint
func (h *FraudHandler) GetAlerts(c *gin.Context) {
	userID := c.Query("userId")

	alerts, err := h.evaluator.ListAlerts(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Error listing fraud alerts", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
			Message: "Error listing fraud alerts",
		})
		return
	}

	c.JSON(http.StatusOK, dto.FromFraudAlerts(alerts))
}

// ResolveAlert handles the POST /fraud-detection/alerts/:alertId/resolve endpoint
func (h *FraudHandler) ResolveAlert(c *gin.Context) {
	alertIDParam := c.Param("alertId")
	alertID, err := strconv.ParseUint(alertIDParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid alert ID format",
		})
		return
	}

	var req dto.ResolveAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidResolution),
			Message: "Resolution must be one of: legitimate, fraudulent",
		})
		return
	}

	alert, err := h.evaluator.Resolve(c.Request.Context(), alertID, entity.Resolution(req.Resolution))
	if err != nil {
		if domainerr.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrAlertNotFound),
				Message: "Fraud alert not found",
			})
			return
		}

		h.logger.Error("Error resolving fraud alert", map[string]any{
			"alertId": alertID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
			Message: "Error resolving fraud alert",
		})
		return
	}

	c.JSON(http.StatusOK, dto.FromFraudAlert(alert))
}
