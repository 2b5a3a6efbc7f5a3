package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/p2pdesk/backoffice/internal/external/trading"
	"github.com/p2pdesk/backoffice/pkg/config"
	"github.com/p2pdesk/backoffice/pkg/httputil"
	"github.com/p2pdesk/backoffice/pkg/logger"
	"github.com/p2pdesk/backoffice/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check configuration and upstream connectivity",
	Long: `Checks the service configuration and upstream connectivity.

Checks:
- Config loads and validates
- Redis connection (if enabled)
- Trading API reachability (if TRADING_SERVICE_TOKEN is set)

Example:
  go run ./cmd/deskd status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== P2P Desk Back-Office Status ===")

	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("%-15s FAIL (%v)\n", "Config:", err)
		return err
	}
	fmt.Printf("%-15s OK (env=%s, port=%s)\n", "Config:", cfg.Env, cfg.Port)

	log := logger.New(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// 2. Redis
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(cfg)
		if err != nil {
			fmt.Printf("%-15s FAIL (%v)\n", "Redis:", err)
		} else {
			fmt.Printf("%-15s OK (%s:%s)\n", "Redis:", cfg.Redis.Host, cfg.Redis.Port)
			redisClient.Close()
		}
	} else {
		fmt.Printf("%-15s disabled\n", "Redis:")
	}

	// 3. Trading API
	if cfg.Trading.ServiceToken == "" {
		fmt.Printf("%-15s skipped (TRADING_SERVICE_TOKEN not set)\n", "Trading API:")
	} else {
		httpClient := httputil.New(log)
		tradingClient := trading.NewClient(cfg.Trading.BaseURL, cfg.Trading.RequestsPerSecond, httpClient, log)

		start := time.Now()
		page, err := tradingClient.ListOrders(ctx, cfg.Trading.ServiceToken, trading.ListOrdersRequest{
			Page: 1,
			Rows: 1,
		})
		if err != nil {
			fmt.Printf("%-15s FAIL (%v)\n", "Trading API:", err)
		} else {
			fmt.Printf("%-15s OK (%d orders, %v)\n", "Trading API:",
				page.Count, time.Since(start).Round(time.Millisecond))
		}
	}

	// The payment provider has no side-effect-free endpoint to probe,
	// so only its configuration is reported.
	fmt.Printf("%-15s configured (%s)\n", "Payment API:", cfg.Payment.BaseURL)

	return nil
}
