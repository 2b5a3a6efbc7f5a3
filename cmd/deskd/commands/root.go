package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deskd",
	Short: "P2P desk back-office service",
	Long: `P2P desk back-office CLI

Bulk payout orchestration for a P2P trading desk: fetches order
details from the trading platform, transforms them into payment
instructions and submits them to the payment provider.

Usage:
  go run ./cmd/deskd [command]

Examples:
  go run ./cmd/deskd api
  go run ./cmd/deskd digest
  go run ./cmd/deskd status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
