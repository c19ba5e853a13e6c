package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finsight/internal/config"
	"finsight/internal/database"
	"finsight/internal/handlers"
	"finsight/internal/middleware"
	"finsight/internal/repositories"
	"finsight/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	budgetRepo := repositories.NewBudgetRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	alertRepo := repositories.NewAlertRepository(db)
	goalRepo := repositories.NewGoalRepository(db)
	receiptRepo := repositories.NewReceiptRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	tokenService := services.NewTokenService(&cfg.JWT)
	passwordService := services.NewPasswordService()
	authService := services.NewAuthService(userRepo, passwordService, tokenService, logger)
	alertService := services.NewAlertService(alertRepo)
	riskEngine := services.NewRiskEngine()
	riskMonitor := services.NewRiskMonitor(
		budgetRepo,
		transactionRepo,
		riskEngine,
		alertService,
		metrics,
		cfg.Analyzer.Interval,
		cfg.Analyzer.MaxConcurrency,
	)
	ocrService := services.NewOCRService(receiptRepo, &cfg.ModelService, metrics, logger)
	goalPredictionService := services.NewGoalPredictionService(goalRepo, transactionRepo, &cfg.ModelService, metrics, logger)

	// Leftover demo alerts from earlier seed data are removed once at boot
	alertService.CleanupLegacyAlerts()

	analyzerCtx, stopAnalyzer := context.WithCancel(context.Background())
	analyzerDone := make(chan struct{})
	if cfg.Analyzer.Enabled {
		go func() {
			defer close(analyzerDone)
			riskMonitor.Start(analyzerCtx)
		}()
	} else {
		close(analyzerDone)
		logger.Warn("risk analyzer disabled by configuration")
	}

	e := buildServer(cfg, db, handlers.NewAuthHandler(authService),
		handlers.NewBudgetHandler(budgetRepo),
		handlers.NewTransactionHandler(transactionRepo),
		handlers.NewAlertHandler(alertService),
		handlers.NewGoalHandler(goalRepo, goalPredictionService),
		handlers.NewReceiptHandler(ocrService, receiptRepo),
		tokenService,
	)

	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("server starting", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	stopAnalyzer()
	<-analyzerDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
}

func buildServer(
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	budgetHandler *handlers.BudgetHandler,
	transactionHandler *handlers.TransactionHandler,
	alertHandler *handlers.AlertHandler,
	goalHandler *handlers.GoalHandler,
	receiptHandler *handlers.ReceiptHandler,
	tokenService services.TokenServiceInterface,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitPerSecond*2))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	healthHandler := handlers.NewHealthCheckHandler(db)
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("", middleware.RequireAuth(tokenService))

	protected.POST("/budgets", budgetHandler.CreateBudget)
	protected.GET("/budgets", budgetHandler.ListBudgets)
	protected.GET("/budgets/:id", budgetHandler.GetBudget)
	protected.PUT("/budgets/:id", budgetHandler.UpdateBudget)
	protected.DELETE("/budgets/:id", budgetHandler.DeleteBudget)

	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.GET("/transactions", transactionHandler.ListTransactions)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	protected.GET("/alerts/active", alertHandler.ListActiveAlerts)
	protected.GET("/alerts/recent", alertHandler.ListRecentAlerts)
	protected.PATCH("/alerts/:id/resolve", alertHandler.ResolveAlert)

	protected.POST("/goals", goalHandler.CreateGoal)
	protected.GET("/goals", goalHandler.ListGoals)
	protected.PUT("/goals/:id", goalHandler.UpdateGoal)
	protected.DELETE("/goals/:id", goalHandler.DeleteGoal)
	protected.GET("/goals/:id/predict", goalHandler.PredictGoalCompletion)

	protected.POST("/receipts/upload", receiptHandler.UploadReceipt)
	protected.GET("/receipts", receiptHandler.ListReceipts)

	return e
}
