package routes

import (
	coreport "github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	transactionHandler *handler.TransactionHandler,
	userHandler *handler.UserHandler,
	fraudHandler *handler.FraudHandler,
) {
	// Transaction routes
	transactionRoutes := router.Group("/transactions")
	{
		// POST /transactions
		transactionRoutes.POST("", transactionHandler.CreateTransaction)

		// GET /transactions/history
		transactionRoutes.GET("/history", transactionHandler.GetTransactionHistory)

		// GET /transactions/:transactionId
		transactionRoutes.GET("/:transactionId", transactionHandler.GetTransactionByID)
	}

	// User routes
	userRoutes := router.Group("/users")
	{
		// GET /users/:userId/balance
		userRoutes.GET("/:userId/balance", userHandler.GetBalance)
	}

	// Fraud detection routes
	fraudRoutes := router.Group("/fraud-detection")
	{
		// GET /fraud-detection/alerts
		fraudRoutes.GET("/alerts", fraudHandler.GetAlerts)

		// POST /fraud-detection/alerts/:alertId/resolve
		fraudRoutes.POST("/alerts/:alertId/resolve", fraudHandler.ResolveAlert)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
