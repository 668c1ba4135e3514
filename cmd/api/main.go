package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ctisdesk/autopilot/internal/api/router"
	"github.com/ctisdesk/autopilot/internal/audit"
	appconfig "github.com/ctisdesk/autopilot/internal/config"
	"github.com/ctisdesk/autopilot/internal/http/handlers"
	"github.com/ctisdesk/autopilot/internal/notify"
	"github.com/ctisdesk/autopilot/internal/observability/metrics"
	"github.com/ctisdesk/autopilot/internal/systems"
	"github.com/ctisdesk/autopilot/internal/workflow"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

func main() {
	// Load .env in development; production relies on real env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting autopilot API server", "env", cfg.Env, "port", cfg.Port)

	registry := prometheus.NewRegistry()
	workflowMetrics := metrics.NewWorkflowMetrics(registry)

	// Every capability defaults to the deterministic demo backend; real
	// backends replace individual capabilities when configured.
	demo := systems.NewDemoSystems(logger)
	sys := demo.All()

	if cfg.UseRedisKB {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)

		kb := systems.NewRedisKnowledgeBase(client, logger)
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := kb.SeedDefaultsIfEmpty(seedCtx); err != nil {
			logger.Error("failed to seed knowledge base", "error", err)
			cancel()
			os.Exit(1)
		}
		cancel()
		sys.Knowledge = kb
		logger.Info("using redis knowledge base", "addr", cfg.RedisAddr)
	}

	if cfg.TicketBaseURL != "" {
		sys.Ticketing = systems.NewTicketClient(cfg.TicketBaseURL, cfg.TicketAPIToken, logger)
		logger.Info("using ticket tracker", "base_url", cfg.TicketBaseURL)
	}

	engine := workflow.NewEngine(sys, workflow.EngineConfig{
		RelevanceThreshold: cfg.KBRelevanceThreshold,
		CallTimeout:        cfg.FacadeCallTimeout,
		TicketQueue:        cfg.TicketQueue,
		HardwareQueue:      cfg.HardwareQueue,
	}, logger, workflowMetrics)

	var store *audit.Store
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(pingCtx); err != nil {
			logger.Error("failed to ping database", "error", err)
			cancel()
			os.Exit(1)
		}
		cancel()
		store = audit.NewStore(db, logger)
		logger.Info("run history enabled")
	}

	sender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger)
	var delivery *notify.Delivery
	if sender != nil {
		delivery = notify.NewDelivery(sender, logger)
	} else {
		delivery = notify.NewDelivery(nil, logger)
		logger.Info("sendgrid not configured, responses are logged only")
	}

	workflowHandler := handlers.NewWorkflowHandler(engine, store, delivery, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		WorkflowHandler:    workflowHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RunRateLimit:       5,
		RunRateBurst:       10,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	if db != nil {
		_ = db.Close()
	}
	logger.Info("server stopped")
}
