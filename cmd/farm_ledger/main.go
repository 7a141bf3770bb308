package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
	"github.com/dairyworks/farm_ledger/internal/core/services"
	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/dairyworks/farm_ledger/internal/handlers"
	"github.com/dairyworks/farm_ledger/internal/middleware"
	"github.com/dairyworks/farm_ledger/internal/platform/config"
	"github.com/dairyworks/farm_ledger/internal/repositories/database/pgsql"
	"github.com/dairyworks/farm_ledger/internal/repositories/memory"
	"github.com/dairyworks/farm_ledger/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Farm Ledger API
// @version 1.0
// @description Double-entry ledger for a dairy farm: sales, purchases, vouchers, ledgers and the day book.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	uow, cleanup, err := newUnitOfWork(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterDecimalValidators(v); err != nil {
			logger.Error("Failed to register validators", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware: logging first so every later layer has a request logger
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Metrics(),
		middleware.RateLimit(limiter),
	)

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := services.NewServiceContainer(cfg, uow)
	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newUnitOfWork opens the configured store. The returned cleanup releases it.
func newUnitOfWork(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.UnitOfWork, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		store := memory.New()
		seedDefaultAccounts(store, cfg)
		logger.Info("In-memory store ready")
		return store, func() {}, nil
	}

	if err := runMigrations(cfg, logger); err != nil {
		return nil, nil, err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewUnitOfWork(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))

	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return errors.Join(sourceErr, dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// seedDefaultAccounts creates the sales, purchase and cash accounts postings
// resolve by name, mirroring the seed migration.
func seedDefaultAccounts(store *memory.Store, cfg *config.Config) {
	now := time.Now().UTC()
	for _, seed := range []struct {
		accountType domain.AccountType
		name        string
	}{
		{domain.SaleAccount, cfg.SalesAccountName},
		{domain.PurchaseAccount, cfg.PurchaseAccountName},
		{domain.CashAccount, cfg.CashAccountName},
	} {
		store.SeedAccount(domain.Account{
			AccountID:     uuid.NewString(),
			AccountType:   seed.accountType,
			AccountName:   seed.name,
			BalanceMethod: domain.BalanceMethodFor(seed.accountType),
			IsActive:      true,
			AuditFields:   domain.NewAuditFields("system", now),
		})
	}
}
