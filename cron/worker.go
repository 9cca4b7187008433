// Package cron runs the background refresh of the reference-data cache so the
// nationality and document-type indexes stay current without restarting the
// kiosk service.
package cron

import (
	"context"
	"fmt"
	"time"

	"guestdesk/config"
	"guestdesk/services/refdata"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeRefDataRefresh = "refdata:refresh"

// InitRefDataWorker starts the async worker and the periodic scheduler that
// enqueues reference-data refresh tasks.
func InitRefDataWorker(cfg *config.Config, refDataSvc refdata.Service, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}

	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 1,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRefDataRefresh, handleRefDataRefresh(refDataSvc, logger))

	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Error("refdata worker stopped", zap.Error(err))
		}
	}()

	interval := time.Duration(cfg.RefDataRefreshMins) * time.Minute
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register(
		fmt.Sprintf("@every %s", interval),
		asynq.NewTask(TypeRefDataRefresh, nil),
	); err != nil {
		logger.Error("failed to register refdata refresh schedule", zap.Error(err))
		return
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("refdata scheduler stopped", zap.Error(err))
		}
	}()
}

func handleRefDataRefresh(refDataSvc refdata.Service, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		if err := refDataSvc.Refresh(ctx); err != nil {
			logger.Warn("reference data refresh failed, keeping current indexes", zap.Error(err))
			return err
		}
		logger.Info("reference data refreshed")
		return nil
	}
}
