package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/p2pdesk/backoffice/internal/api"
	"github.com/p2pdesk/backoffice/internal/api/handlers"
	"github.com/p2pdesk/backoffice/internal/banks"
	"github.com/p2pdesk/backoffice/internal/external/payment"
	"github.com/p2pdesk/backoffice/internal/external/trading"
	"github.com/p2pdesk/backoffice/internal/orders"
	"github.com/p2pdesk/backoffice/internal/payments"
	"github.com/p2pdesk/backoffice/internal/scheduler"
	"github.com/p2pdesk/backoffice/internal/scheduler/jobs"
	"github.com/p2pdesk/backoffice/pkg/config"
	"github.com/p2pdesk/backoffice/pkg/httputil"
	"github.com/p2pdesk/backoffice/pkg/logger"
	"github.com/p2pdesk/backoffice/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the back-office REST API server.

This command:
- Starts the HTTP API server
- Exposes order browsing endpoints
- Exposes bulk and single payment triggers
- Runs the pending payments digest on a schedule

Endpoints:
  GET  /health                - Health check
  GET  /api/orders            - List orders
  GET  /api/orders/{id}       - Order detail
  GET  /api/ads               - List standing offers
  POST /api/payments/bulk     - Pay a batch of orders
  POST /api/payments/single   - Pay one order
  POST /api/jobs/{name}/run   - Trigger a scheduled job now
  GET  /api/jobs/{name}/history - Recent job runs
  GET  /metrics               - Prometheus metrics

Example:
  go run ./cmd/deskd api
  go run ./cmd/deskd api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== P2P Desk Back-Office API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to Redis (no-op when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	if redisClient.Enabled() {
		log.Info("Connected to Redis")
	} else {
		log.Warn("Redis disabled, upstream rate limits are per-instance only")
	}

	rateLimiter := redis.NewRateLimiter(redisClient, "backoffice")

	// 4. Create HTTP clients. Neither upstream client retries
	// automatically: a replayed payout could double-pay, and failed
	// order fetches are dropped per order, not replayed. Both clients
	// enforce this themselves.
	tradingHTTP := httputil.New(log).
		WithRateLimiter(rateLimiter, redis.TradingRateLimit)
	paymentHTTP := httputil.NewWithTimeout(log, 60*time.Second).
		WithRateLimiter(rateLimiter, redis.PaymentRateLimit)

	// 5. Create external API clients
	tradingClient := trading.NewClient(cfg.Trading.BaseURL, cfg.Trading.RequestsPerSecond, tradingHTTP, log)
	paymentClient := payment.NewClient(cfg.Payment.BaseURL, paymentHTTP, log)

	// 6. Create the payment pipeline
	transformer := payments.NewTransformer(banks.Default(), cfg.Payout)
	validator := payments.NewValidator()
	orchestrator := payments.NewOrchestrator(paymentClient, transformer, validator, log)

	// 7. Create the order detail fetcher
	fetcher := orders.NewBatchFetcher(tradingClient, log).
		WithBatchSize(cfg.Fetch.BatchSize).
		WithChunkDelay(cfg.Fetch.ChunkDelay)

	// 8. Create the scheduler. The digest needs a service token; without
	// one the scheduler stays empty and the job endpoints return 404.
	sched := scheduler.New(log)
	if cfg.Trading.ServiceToken != "" {
		digest := jobs.NewPendingPaymentsDigestJob(tradingClient, cfg.Trading.ServiceToken, log)
		if err := sched.AddJob(digest); err != nil {
			return fmt.Errorf("schedule digest job: %w", err)
		}

		sched.Start()
		defer sched.Stop()
	} else {
		log.Warn("TRADING_SERVICE_TOKEN not set, digest job disabled")
	}

	// 9. Create handlers
	ordersHandler := handlers.NewOrdersHandler(tradingClient, log)
	paymentsHandler := handlers.NewPaymentsHandler(fetcher, orchestrator, log)
	jobsHandler := handlers.NewJobsHandler(sched, log)

	// 10. Create router
	router := api.NewRouter(cfg, ordersHandler, paymentsHandler, jobsHandler, log)

	// 11. Create server
	server := api.New(cfg, log, router)

	// 12. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/orders")
	fmt.Println("  GET  /api/orders/{id}")
	fmt.Println("  GET  /api/ads")
	fmt.Println("  POST /api/payments/bulk")
	fmt.Println("  POST /api/payments/single")
	fmt.Println("  POST /api/jobs/{name}/run")
	fmt.Println("  GET  /api/jobs/{name}/history")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
