package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bidding-engine/internal/api/handlers"
	"bidding-engine/internal/api/middleware"
	"bidding-engine/internal/clock"
	"bidding-engine/internal/config"
	"bidding-engine/internal/infrastructure/leader"
	"bidding-engine/internal/infrastructure/mysql"
	"bidding-engine/internal/infrastructure/redis"
	"bidding-engine/internal/infrastructure/websocket"
	"bidding-engine/internal/metrics"
	"bidding-engine/internal/services"
	"bidding-engine/pkg/logger"
	"bidding-engine/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New().Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithLevel(cfg.Log.Level).With("service", "bidding-service", "instance_id", cfg.Instance.ID)
	log.Info("Starting bidding service", "config", cfg.GetConfigString())

	settings, err := services.NewSettings(cfg.Engine)
	if err != nil {
		log.Fatal("Invalid engine settings", "error", err)
	}

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

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	engineMetrics := metrics.NewEngineMetrics(registry)

	// Initialize repositories
	auctionRepo := mysql.NewMySQLAuctionRepository(db)
	bidRepo := mysql.NewMySQLBidRepository(db)
	schedulerRepo := mysql.NewMySQLSchedulerRepository(db)
	notificationRepo := mysql.NewMySQLNotificationRepository(db)

	// Initialize Redis based components
	stateCache := redis.NewRedisStateCache(rdb)
	eventPublisher := redis.NewEventPublisher(rdb, cfg.Redis.EventsChannel)
	commandBus := redis.NewCommandBus(rdb, cfg.Redis.CommandsChannel, log)
	leaderElection := leader.NewRedisLeaderElection(rdb, cfg.Leader.Key, cfg.Leader.TTL)

	// Initialize the engine
	clk := clock.New()
	broadcaster := services.NewEventBroadcaster(settings.SubscriberBuffer, engineMetrics, log)
	persister := services.NewStorePersister(auctionRepo, bidRepo, stateCache, log)

	auctionRegistry := services.NewAuctionRegistry(services.RegistryDeps{
		AuctionRepo: auctionRepo,
		BidRepo:     bidRepo,
		Persister:   persister,
		Broadcaster: broadcaster,
		Clock:       clk,
		Metrics:     engineMetrics,
	}, settings, log)

	scheduler := services.NewCronAuctionScheduler(schedulerRepo, auctionRegistry, leaderElection,
		cfg.Instance.ID, cfg.Scheduler.SweepSpec, clk, log)
	auctionRegistry.SetScheduler(scheduler)

	// Initialize connection manager and notifiers
	connManager := websocket.NewConnectionManager(log)
	userNotifier := websocket.NewWebSocketNotifier(connManager)
	outbidNotifier := services.NewOutbidNotifier(userNotifier, notificationRepo, clk, engineMetrics,
		settings.PublishMaxRetries, log)
	relay := services.NewEventRelay(eventPublisher, settings.PublishMaxRetries, engineMetrics, log)

	// Taps are attached before any machine runs so that they see every event.
	// They end when the registry closes the broadcaster, after the last flush.
	go outbidNotifier.Run(context.Background(), broadcaster.SubscribeAll())
	go relay.Run(context.Background(), broadcaster.SubscribeAll())

	if err := auctionRegistry.Recover(startupCtx); err != nil {
		log.Error("Some auctions could not be recovered", "error", err)
	}

	bidService := services.NewBidService(auctionRegistry, clk, log)
	commandListener := services.NewCommandListener(auctionRegistry, log)

	// Setup routes
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	api := router.PathPrefix("/api/v1").Subrouter()
	handlers.NewBidHandler(bidService, log).Register(api)
	handlers.NewWebSocketHandlers(bidService, connManager, cfg.Server.AllowedOrigins, log).Register(router)

	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"status":"ok","live_auctions":%d}`, auctionRegistry.Len())
	}).Methods(http.MethodGet)

	// Start background services
	if err := scheduler.Start(ctx); err != nil {
		log.Fatal("Failed to start scheduler", "error", err)
	}

	go func() {
		if err := commandListener.Start(ctx, commandBus); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Command listener stopped", "error", err)
		}
	}()

	go campaignForLeadership(ctx, leaderElection, cfg.Instance.ID, cfg.Leader.TTL/2, log)

	// Start HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.BiddingPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down bidding service...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var errs error
	errs = multierr.Append(errs, server.Shutdown(shutdownCtx))
	errs = multierr.Append(errs, scheduler.Stop())
	for _, auctionID := range auctionRegistry.Live() {
		errs = multierr.Append(errs, connManager.CloseAndUnregisterConnections(auctionID))
	}
	errs = multierr.Append(errs, auctionRegistry.Shutdown(shutdownCtx))
	errs = multierr.Append(errs, leaderElection.ReleaseLeadership(shutdownCtx, cfg.Instance.ID))

	if errs != nil {
		log.Error("Bidding service stopped with errors", "error", errs)
		os.Exit(1)
	}
	log.Info("Bidding service stopped")
}

// campaignForLeadership keeps trying to take the scheduler lease until ctx
// ends. The lease holder refreshes it on its own.
func campaignForLeadership(ctx context.Context, election *leader.RedisLeaderElection, instanceID string,
	interval time.Duration, log logger.Logger) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		became, err := election.BecomeLeader(ctx, instanceID)
		switch {
		case err != nil && ctx.Err() == nil:
			log.Error("Failed to attempt leadership", "error", err)
		case became:
			log.Info("Became scheduler leader")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
