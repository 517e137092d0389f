package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/palmledger/palmledger/internal/app"
	"github.com/palmledger/palmledger/internal/auth"
	"github.com/palmledger/palmledger/internal/harvest"
	"github.com/palmledger/palmledger/internal/notes"
	"github.com/palmledger/palmledger/internal/platform/db"
	"github.com/palmledger/palmledger/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	harvestRepo := harvest.NewRepository(pool)
	notesService := notes.NewService(notes.NewRepository(pool))

	// Reminder notes need a real author row behind created_by.
	jobAuthor, err := auth.NewRepository(pool).FindByUsername(ctx, cfg.JobAuthor)
	if err != nil {
		logger.Error("resolve job author", slog.String("username", cfg.JobAuthor), slog.Any("error", err))
		os.Exit(1)
	}

	reminderHandler := jobs.NewHarvestReminderHandler(harvestRepo, notesService, jobAuthor.ID, logger)

	reminderTask, err := jobs.NewHarvestReminderTask(jobs.HarvestReminderPayload{DaysAhead: 2})
	if err != nil {
		logger.Error("build reminder task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskHarvestReminder, Handler: reminderHandler},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 6 * * *", Task: reminderTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
