package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"helpdesk/internal/config"
	"helpdesk/internal/database"
	"helpdesk/internal/server"
	"helpdesk/internal/storage"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := database.Open(cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal("database setup failed", zap.Error(err))
	}
	if err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword, logger); err != nil {
		logger.Fatal("admin seeding failed", zap.Error(err))
	}

	store := storage.NewStore(db)
	r := server.NewRouter(cfg, store, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
}
