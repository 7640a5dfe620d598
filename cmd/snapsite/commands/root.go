package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/snapsite/snapsite/internal/api"
	"github.com/snapsite/snapsite/internal/config"
	"github.com/snapsite/snapsite/internal/logging"
	"github.com/snapsite/snapsite/internal/tui"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "snapsite",
		Short: "Manage website screenshot projects from the terminal",
		Long: `snapsite is a TUI client for a remote screenshot service: create
projects, trigger multi-device screenshot generation, and browse results.`,
		RunE: runTUI,
	}

	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewCreateCommand())
	rootCmd.AddCommand(NewGenerateCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads config and builds the shared client and logger.
func setup() (*api.Client, *slog.Logger, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logging: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithGenerateTimeout(cfg.API.GenerateTimeout),
		api.WithLogger(logger),
	)
	return client, logger, closeLog, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	client, logger, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	if err := tui.Run(context.Background(), client, logger); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
