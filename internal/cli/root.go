package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "ttt",
		Short: "CLI tool for the tic-tac-toe server API",
		Long: `ttt is a CLI tool for interacting with the tic-tac-toe server JSON API.

It supports user registration, login-code issuance and redemption,
and reading and writing game records.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load secret from file if not provided via flag/env
			if err := cfg.LoadSecret(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Secret)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: TTT_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Secret, "secret", cfg.Secret, "User secret (env: TTT_SECRET)")
	rootCmd.PersistentFlags().StringVar(&cfg.SecretFile, "secret-file", cfg.SecretFile, "Secret file path (env: TTT_SECRET_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
