package cmd

import (
	"fmt"
	"os"

	"github.com/sidhant-sriv/roomshare-api/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile  string
	port     int
	inMemory bool
)

// rootCmd serves the API when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "roomshare",
	Short: "Roomshare API - room listings, rental applications and tenant chat",
	Long: `Roomshare API is the backend of a room-rental marketplace.

Owners list rooms, tenants apply and both sides chat per room. Identity is
delegated to an external provider whose HS256 session tokens the API verifies.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "HTTP port (overrides PORT)")
	rootCmd.PersistentFlags().BoolVar(&inMemory, "in-memory", false, "Use the in-process store instead of Postgres")

	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

// loadConfig applies command-line overrides on top of the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if inMemory {
		cfg.InMemory = true
	}
	return cfg, nil
}
