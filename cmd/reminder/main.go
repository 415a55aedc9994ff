package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"deadline-reminder/internal/config"
	"deadline-reminder/internal/console"
	"deadline-reminder/internal/logger"
	"deadline-reminder/internal/repository"
	"deadline-reminder/internal/service"
	"deadline-reminder/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "deadline-reminder: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadOrCreate(config.DefaultConfigFileName)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := logger.Init(cfg.Development); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	db, err := repository.NewDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if sqlDB, err := db.DB(); err != nil {
		logger.Warn("underlying sql connection not accessible", zap.Error(err))
	} else {
		defer sqlDB.Close()
	}

	taskRepo := repository.NewTaskRepository(db)
	taskStore := store.New()
	taskSvc := service.NewTaskService(taskStore, taskRepo)
	reminderSvc := service.NewReminderService(taskStore, service.ReminderSettings{
		UpcomingThreshold: cfg.UpcomingDays,
	})

	if err := taskSvc.Load(ctx); err != nil {
		return err
	}
	logger.Info("tasks loaded", zap.Int("count", taskStore.Len()))

	scheduler := service.NewSchedulerService(time.Local)
	if cfg.SnapshotMinutes > 0 {
		interval := time.Duration(cfg.SnapshotMinutes) * time.Minute
		if _, err := scheduler.ScheduleInterval(interval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := taskSvc.Save(jobCtx); err != nil {
				logger.Error("snapshot save failed", err)
				return
			}
			logger.Info("snapshot saved", zap.Int("count", taskStore.Len()))
		}); err != nil {
			return fmt.Errorf("schedule snapshots: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	session := console.New(os.Stdin, os.Stdout, taskSvc, reminderSvc, cfg.CleanupDays)
	if err := session.Run(ctx); err != nil &&
		!errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("session: %w", err)
	}

	// Final snapshot so nothing typed this session is lost.
	saveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := taskSvc.Save(saveCtx); err != nil {
		logger.Error("final save failed", err)
	}
	logger.Info("shutdown complete")
	return nil
}
