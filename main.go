package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pos-sync-service/config"
	"pos-sync-service/handlers"
	"pos-sync-service/logger"
	"pos-sync-service/remote"
	"pos-sync-service/repository"
	"pos-sync-service/routes"
	"pos-sync-service/storage"
	"pos-sync-service/sync"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.Env != "development" && cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	// A missing or unopenable database file is fatal: every repository
	// call depends on it.
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("local store unavailable", zap.Error(err))
	}
	log.Info("local store ready", zap.String("path", cfg.DBPath))

	remoteClient := remote.NewClient(cfg.RemoteBaseURL, cfg.RemoteTimeout, log)
	orders := repository.NewOrders(store, log)
	syncManager := sync.NewManager(store, remoteClient, log, cfg.SyncMaxRetry, cfg.SyncBaseDelay)
	orders.OnCompleted(syncManager.TriggerAsync)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := sync.NewScheduler(syncManager, cfg.SyncInterval, log)
	go scheduler.Run(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	h := handlers.New(orders, store, syncManager, remoteClient, log)
	routes.SetupRoutes(r, h, []byte(cfg.JWTSecret))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Info("terminal api listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown was not clean", zap.Error(err))
	}
}
