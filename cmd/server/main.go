package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/segyhp/loan-backoffice/internal/auth"
	"github.com/segyhp/loan-backoffice/internal/cache"
	"github.com/segyhp/loan-backoffice/internal/config"
	"github.com/segyhp/loan-backoffice/internal/handler"
	"github.com/segyhp/loan-backoffice/internal/repository"
	"github.com/segyhp/loan-backoffice/internal/service"
	"github.com/segyhp/loan-backoffice/pkg/logger"
	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateAuth(); err != nil {
		log.Fatalf("Invalid auth configuration: %v", err)
	}

	logger.New(cfg.Logging.Level, cfg.Logging.Format)

	// Amounts travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Redis
	redisClient, reportCache := initCache(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTExpiresIn)

	// Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	rateRepo := repository.NewRateRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize services
	clientService := service.NewClientService(clientRepo, reportCache)
	rateService := service.NewRateService(rateRepo)
	loanService := service.NewLoanService(loanRepo, clientRepo, rateRepo, txManager, reportCache)
	paymentService := service.NewPaymentService(paymentRepo, loanRepo, txManager, reportCache)
	userService := service.NewUserService(userRepo, tokens)
	reportService := service.NewReportService(reportRepo, loanRepo, reportCache, cfg)
	exportService := service.NewExportService(reportService)

	// Setup routes
	var redisProbe goredis.UniversalClient
	if redisClient != nil {
		redisProbe = redisClient
	}
	router := handler.NewRouter(handler.Handlers{
		Auth:     handler.NewAuthHandler(userService),
		Users:    handler.NewUserHandler(userService),
		Clients:  handler.NewClientHandler(clientService),
		Rates:    handler.NewRateHandler(rateService),
		Loans:    handler.NewLoanHandler(loanService),
		Payments: handler.NewPaymentHandler(paymentService),
		Account:  handler.NewAccountHandler(reportService),
		Exports:  handler.NewExportHandler(exportService),
		Health:   handler.NewHealthHandler(db, redisProbe, cfg.Health.Timeout),
	}, tokens)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

// initCache connects the report cache. Without REDIS_HOST, or when redis is
// unreachable, reports are computed on every request.
func initCache(cfg *config.Config) (*goredis.Client, cache.Cache) {
	addr := cfg.Redis.Addr()
	if addr == "" {
		slog.Info("report cache disabled")
		return nil, cache.Noop{}
	}

	client, err := cache.NewRedisConnection(cache.ConnectionInfo{
		Addr:        addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		MaxRetries:  3,
		DialTimeout: 5 * time.Second,
		Timeout:     3 * time.Second,
	})
	if err != nil {
		slog.Warn("report cache unavailable, continuing without it", "addr", addr, "error", err)
		return nil, cache.Noop{}
	}

	return client, cache.NewRedisCache(client, cfg.Redis.Prefix)
}
