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

	transactionUseCase "github.com/wanjiru-dev/church-ledger/internal/domain/usecase/transaction"
	userUseCase "github.com/wanjiru-dev/church-ledger/internal/domain/usecase/user"

	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/database"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/logger"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/receipt"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/repository"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/security"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/sms"
	timeProvider "github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/time"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Logger, cfg.Environment == config.Production)
	defer func() {
		_ = appLogger.Flush()
	}()

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(database.FromAppConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := database.RetryOnTransientError(context.Background(), database.DefaultRetryConfig(), migrationMgr.MigrateAll, appLogger); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories and the unit of work
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)
	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), appLogger)
	uow := dbManager.CreateUnitOfWork()

	// Receipt rendering and storage
	receiptRenderer := receipt.NewPDFRenderer(cfg.Receipt.ChurchName, tp)
	receiptStore, err := receipt.NewFileStore(cfg.Receipt.StorageDir, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize receipt store", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// SMS gateway
	smsSender := sms.NewAfricasTalkingSender(cfg.SMS, appLogger)

	// Initialize use cases
	userService := userUseCase.NewService(
		uow,
		userRepo,
		security.NewBcryptHasher(0),
		security.NewBasicPasswordPolicy(),
		tp,
		appLogger,
	)

	transactionService := transactionUseCase.NewService(
		transactionRepo,
		receiptRenderer,
		receiptStore,
		smsSender,
		tp,
		appLogger,
	).WithRenderTimeout(cfg.Receipt.RenderTimeout).WithSMSTimeout(cfg.SMS.SendTimeout)

	// Seed the bootstrap treasurer account
	if err := migration.SeedAdmin(context.Background(), userRepo, userService, cfg.Seed, appLogger); err != nil {
		appLogger.Error("Failed to seed admin account", map[string]any{
			"error": err.Error(),
		})
	}

	// Initialize API handlers
	userHandler := handler.NewUserHandler(userService, appLogger)
	transactionHandler := handler.NewTransactionHandler(transactionService, appLogger)
	mpesaHandler := handler.NewMpesaHandler(transactionService, appLogger)

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, cfg.Auth, transactionHandler, mpesaHandler, userHandler, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
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

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

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
		missingConfigs = append(missingConfigs, "database.host (or CL_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or CL_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missingConfigs = append(missingConfigs, "database.password (or CL_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or CL_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (or CL_AUTH_JWT_SECRET environment variable)")
	}

	if cfg.Receipt.StorageDir == "" {
		missingConfigs = append(missingConfigs, "receipt.storageDir")
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
