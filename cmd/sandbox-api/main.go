package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"claimsight/claims-portal/claims-portal-core/internal/config"
	"claimsight/claims-portal/claims-portal-core/internal/sandbox"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("CLAIMSIGHT_CONFIG"))
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	store := sandbox.NewStore()

	sweeper := sandbox.NewSweeper(store, logger, cfg.Sandbox.SweepInterval)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	router := sandbox.NewRouter(store, logger)
	srv := &http.Server{
		Addr:    cfg.Sandbox.GetSandboxAddr(),
		Handler: router,
	}

	go func() {
		logger.Info("Sandbox API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Sandbox API failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down sandbox API")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	if level == "debug" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}
