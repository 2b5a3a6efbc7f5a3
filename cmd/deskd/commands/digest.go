package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/p2pdesk/backoffice/internal/external/trading"
	"github.com/p2pdesk/backoffice/internal/scheduler/jobs"
	"github.com/p2pdesk/backoffice/pkg/config"
	"github.com/p2pdesk/backoffice/pkg/httputil"
	"github.com/p2pdesk/backoffice/pkg/logger"
)

// digestCmd represents the digest command
var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Run the pending payments digest once",
	Long: `Runs the pending payments digest immediately and exits.

The digest lists sell orders awaiting payout on the trading platform
and logs a summary. It reads nothing locally and triggers no payments.
Requires TRADING_SERVICE_TOKEN.

Example:
  go run ./cmd/deskd digest
  go run ./cmd/deskd digest --timeout 30s`,
	RunE: runDigest,
}

var (
	digestTimeout time.Duration
)

func init() {
	rootCmd.AddCommand(digestCmd)

	// Flags
	digestCmd.Flags().DurationVar(&digestTimeout, "timeout", 60*time.Second, "digest timeout")
}

func runDigest(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Pending Payments Digest ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	httpClient := httputil.New(log)
	tradingClient := trading.NewClient(cfg.Trading.BaseURL, cfg.Trading.RequestsPerSecond, httpClient, log)

	job := jobs.NewPendingPaymentsDigestJob(tradingClient, cfg.Trading.ServiceToken, log)

	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		return fmt.Errorf("digest failed: %w", err)
	}

	fmt.Printf("\nDigest completed in %v\n", time.Since(start).Round(time.Millisecond))
	return nil
}
