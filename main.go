package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guestdesk/config"
	"guestdesk/cron"
	"guestdesk/dots"
	"guestdesk/handlers"
	"guestdesk/middleware"
	"guestdesk/routes"
	"guestdesk/scanner"
	"guestdesk/services/guest"
	"guestdesk/services/refdata"
	"guestdesk/services/reservation"
	"guestdesk/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.IsProduction())
	if err != nil {
		log.Fatalf("main: failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cacheClient := utils.NewCacheClient(cfg, logger)

	// Gateways.
	dotsClient := dots.NewClient(cfg, logger)
	scannerClient := scanner.NewClient(cfg, logger)

	// Services.
	refDataSvc := &refdata.DefaultService{
		Gateway:  dotsClient,
		Cache:    cacheClient,
		Logger:   logger,
		CacheTTL: time.Duration(cfg.RefDataRefreshMins) * time.Minute,
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := refDataSvc.Load(ctx); err != nil {
			logger.Sugar().Warnf("main: reference data unavailable at startup: %v", err)
		}
		cancel()
	}

	guestSvc := &guest.DefaultService{
		Gateway:    dotsClient,
		Scanner:    scannerClient,
		RefData:    refDataSvc,
		Logger:     logger,
		SessionTTL: time.Duration(cfg.SessionTTLMinutes) * time.Minute,
	}
	reservationSvc := &reservation.DefaultService{
		Gateway: dotsClient,
		Logger:  logger,
	}

	handlerBundle := handlers.NewHandlerBundle(cfg, logger, guestSvc, reservationSvc, refDataSvc)

	// Create the Gin router.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler(logger))
	router.Use(gin.Logger())
	router.Use(middleware.RateLimit(logger))

	routes.Register(router, handlerBundle)

	utils.StartHealthMonitor(cacheClient, func(ctx context.Context) error {
		_, err := dotsClient.GetNationalityList(ctx)
		return err
	})
	cron.InitRefDataWorker(cfg, refDataSvc, logger)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
