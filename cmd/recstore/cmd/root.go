/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
	"github.com/ssargent/recstore/pkg/config"
	"github.com/ssargent/recstore/pkg/di"
	"github.com/ssargent/recstore/pkg/logging"
	"go.uber.org/zap"
)

type contextKey string

const containerKey contextKey = "container"

// newRootCmd builds the command tree. Each call returns a fresh tree so tests
// never share flag state.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "recstore",
		Short: "recstore - contiguous record stores for names and numbers",
		Long: `recstore keeps text records and 32-bit integers packed back to back in a
single growable buffer.

Names are loaded one per line and can be listed, counted, fetched and removed
by index. Numbers are loaded from whitespace separated text and reduced by
addition, subtraction, multiplication and division into a report file.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  setupContainer,
		PersistentPostRunE: flushContainer,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default is "+config.GetDefaultConfigPath()+")")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format override (json, console)")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file on exit")

	rootCmd.AddCommand(newNamesCmd())
	rootCmd.AddCommand(newMathCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

// setupContainer loads configuration, applies flag overrides and stores the
// dependency container in the command context
func setupContainer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Logging.Format = format
	}
	if file, _ := cmd.Flags().GetString("metrics-file"); file != "" {
		cfg.Metrics.File = file
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	logger = logger.With(
		zap.String("run_id", ksuid.New().String()),
		zap.String("command", cmd.CommandPath()))

	container, err := di.NewContainer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, containerKey, container))
	return nil
}

// loadConfig reads --config when given, otherwise the default path if a file
// exists there, otherwise the built-in defaults
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	defaultPath := config.GetDefaultConfigPath()
	if config.ConfigExists(defaultPath) {
		cfg, err := config.LoadConfig(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	return config.DefaultConfig(), nil
}

func flushContainer(cmd *cobra.Command, args []string) error {
	container, err := containerFrom(cmd)
	if err != nil {
		return nil
	}
	err = container.WriteMetrics()
	_ = container.GetLogger().Sync()
	return err
}

func containerFrom(cmd *cobra.Command) (*di.Container, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, fmt.Errorf("dependency container not initialized")
	}
	container, ok := ctx.Value(containerKey).(*di.Container)
	if !ok || container == nil {
		return nil, fmt.Errorf("dependency container not initialized")
	}
	return container, nil
}
