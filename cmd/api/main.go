package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	fraudUseCase "github.com/amirhossein-jamali/transaction-service/internal/domain/usecase/fraud"
	transactionUseCase "github.com/amirhossein-jamali/transaction-service/internal/domain/usecase/transaction"
	userUseCase "github.com/amirhossein-jamali/transaction-service/internal/domain/usecase/user"

	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/transaction-service/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/transaction-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() {
		_ = appLogger.Flush()
	}()

	// Parse the decimal thresholds up front so a bad value fails fast
	maxAmount, err := decimal.NewFromString(cfg.Transaction.MaxAmount)
	if err != nil {
		log.Fatalf("Invalid transaction.maxAmount: %v", err)
	}
	highAmountThreshold, err := decimal.NewFromString(cfg.Fraud.HighAmountThreshold)
	if err != nil {
		log.Fatalf("Invalid fraud.highAmountThreshold: %v", err)
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Setup database configuration
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		_ = dbManager.Close()
	}()

	// Run schema migrations
	if err := dbManager.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)
	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), appLogger)
	alertRepo := repository.NewFraudAlertRepository(dbManager.DB(), appLogger)

	// Unit of work for atomic transaction + balance writes
	uow := dbManager.CreateUnitOfWork()

	// Initialize use cases
	userUseCaseImpl := userUseCase.NewUserUseCase(userRepo, tp, appLogger)

	fraudEvaluator := fraudUseCase.NewEvaluator(alertRepo, transactionRepo, tp, appLogger, fraudUseCase.Config{
		HighAmountThreshold:   highAmountThreshold,
		RapidSuccessionWindow: time.Duration(cfg.Fraud.RapidSuccessionTimeMs) * time.Millisecond,
		RapidSuccessionCount:  cfg.Fraud.RapidSuccessionCount,
	})

	processor := transactionUseCase.NewProcessor(
		uow,
		transactionRepo,
		fraudEvaluator,
		tp,
		appLogger,
		maxAmount,
		cfg.Transaction.FraudCheckTimeout,
	)

	// Initialize API handlers
	transactionHandler := handler.NewTransactionHandler(processor, appLogger)
	userHandler := handler.NewUserHandler(userUseCaseImpl, appLogger)
	fraudHandler := handler.NewFraudHandler(fraudEvaluator, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, transactionHandler, userHandler, fraudHandler)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server first, then drain in-flight fraud evaluations
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}
	processor.Wait()

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		if cfg.Environment == config.Production && os.Getenv("TS_DB_HOST") == "" {
			missingConfigs = append(missingConfigs, "database.host (or TS_DB_HOST environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.host")
		}
	}
	if cfg.Database.Port == 0 {
		missingConfigs = append(missingConfigs, "database.port")
	}
	if cfg.Database.Username == "" {
		if cfg.Environment == config.Production && os.Getenv("TS_DB_USERNAME") == "" {
			missingConfigs = append(missingConfigs, "database.username (or TS_DB_USERNAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.username")
		}
	}
	if cfg.Database.Password == "" {
		if cfg.Environment == config.Production && os.Getenv("TS_DB_PASSWORD") == "" {
			missingConfigs = append(missingConfigs, "database.password (or TS_DB_PASSWORD environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.password")
		}
	}
	if cfg.Database.Database == "" {
		if cfg.Environment == config.Production && os.Getenv("TS_DB_NAME") == "" {
			missingConfigs = append(missingConfigs, "database.database (or TS_DB_NAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.database")
		}
	}

	if cfg.Transaction.MaxAmount == "" {
		missingConfigs = append(missingConfigs, "transaction.maxAmount")
	}
	if cfg.Transaction.FraudCheckTimeout == 0 {
		missingConfigs = append(missingConfigs, "transaction.fraudCheckTimeout")
	}

	if cfg.Fraud.HighAmountThreshold == "" {
		missingConfigs = append(missingConfigs, "fraud.highAmountThreshold")
	}
	if cfg.Fraud.RapidSuccessionTimeMs <= 0 {
		missingConfigs = append(missingConfigs, "fraud.rapidSuccessionTimeMs")
	}
	if cfg.Fraud.RapidSuccessionCount <= 0 {
		missingConfigs = append(missingConfigs, "fraud.rapidSuccessionCount")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment == config.Production {
		var warnings []string

		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
