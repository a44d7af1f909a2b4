package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bidding-engine/internal/config"
	"bidding-engine/internal/infrastructure/mysql"
	"bidding-engine/internal/infrastructure/redis"
	"bidding-engine/internal/services"
	"bidding-engine/pkg/logger"
	"bidding-engine/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New().Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithLevel(cfg.Log.Level).With("service", "analytics-service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Initialize Redis
	rdb, err := utils.InitializeRedis(startupCtx, cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}
	defer rdb.Close()

	// Initialize MySQL
	db, err := utils.InitializeMysql(startupCtx, cfg.MySQL, log)
	if err != nil {
		log.Fatal("Failed to connect to MySQL", "error", err)
	}
	defer db.Close()

	if err := mysql.ApplySchema(startupCtx, db); err != nil {
		log.Fatal("Failed to apply schema", "error", err)
	}

	// Initialize services
	subscriber := redis.NewRedisEventSubscriber(rdb, cfg.Redis.EventsChannel, log)
	archiver := services.NewEventArchiver(mysql.NewMySQLEventArchive(db), log)

	done := make(chan error, 1)
	go func() {
		done <- archiver.Start(ctx, subscriber)
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down analytics service...")
		<-done
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Analytics service failed", "error", err)
			os.Exit(1)
		}
	}

	log.Info("Analytics service stopped")
}
