package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/palmledger/palmledger/internal/app"
	"github.com/palmledger/palmledger/internal/auth"
	"github.com/palmledger/palmledger/internal/chat"
	"github.com/palmledger/palmledger/internal/dashboard"
	"github.com/palmledger/palmledger/internal/fertilizer"
	"github.com/palmledger/palmledger/internal/harvest"
	"github.com/palmledger/palmledger/internal/notes"
	"github.com/palmledger/palmledger/internal/observability"
	"github.com/palmledger/palmledger/internal/palmtree"
	"github.com/palmledger/palmledger/internal/platform/cache"
	"github.com/palmledger/palmledger/internal/platform/db"
	"github.com/palmledger/palmledger/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL, redisClient)
	authMiddleware := &auth.Middleware{Tokens: tokens, Logger: logger}
	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, tokens, authMiddleware)

	harvestRepo := harvest.NewRepository(dbpool)
	harvestService := harvest.NewService(harvestRepo)
	harvestHandler := harvest.NewHandler(logger, harvestService)

	fertilizerRepo := fertilizer.NewRepository(dbpool)
	fertilizerService := fertilizer.NewService(fertilizerRepo)
	fertilizerHandler := fertilizer.NewHandler(logger, fertilizerService)

	palmTreeRepo := palmtree.NewRepository(dbpool)
	palmTreeService := palmtree.NewService(palmTreeRepo)
	palmTreeHandler := palmtree.NewHandler(logger, palmTreeService)

	notesRepo := notes.NewRepository(dbpool)
	notesService := notes.NewService(notesRepo)
	notesHandler := notes.NewHandler(logger, notesService)

	chatService := chat.NewService(harvestRepo, fertilizerRepo, palmTreeRepo, notesRepo, logger, metrics)
	chatHandler := chat.NewHandler(logger, chatService)

	dashboardService := dashboard.NewService(harvestRepo, fertilizerRepo, palmTreeRepo, notesRepo)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	jobClient, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Error("create job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, jobClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		AuthMiddleware:    authMiddleware,
		AuthHandler:       authHandler,
		HarvestHandler:    harvestHandler,
		FertilizerHandler: fertilizerHandler,
		PalmTreeHandler:   palmTreeHandler,
		NotesHandler:      notesHandler,
		ChatHandler:       chatHandler,
		DashboardHandler:  dashboardHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
