/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ssargent/minidb/pkg/api"
	"github.com/ssargent/minidb/pkg/config"
	"github.com/ssargent/minidb/pkg/di"
	"github.com/ssargent/minidb/pkg/logging"
)

var container *di.Container

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

type contextKey string

const appKey contextKey = "app"

// app is the state PersistentPreRunE hands to every command
type app struct {
	cfg        *config.Config
	configPath string
	logger     *logrus.Logger
	querier    api.RowQuerier
	printer    *printer
}

func appFrom(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey).(*app)
	if !ok {
		return nil, errors.New("application not initialized")
	}
	return a, nil
}

// NewRootCmd builds the minidb command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minidb",
		Short: "MiniDB - read-only reader for .mdb files",
		Long: `MiniDB reads flat binary .mdb files: a schema header followed by
fixed-layout rows. Rows are fetched by position or by the first row whose
column matches a value, and the same queries are served over HTTP.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default: ~/.config/minidb/config.yaml)")
	flags.StringP("data-dir", "d", "", "Directory served by the API")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.StringP("format", "o", "", "Output format (table or json)")
	flags.Bool("no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newRowCmd(),
		newFindCmd(),
		newColumnCmd(),
		newSchemaCmd(),
		newDumpCmd(),
		newServeCmd(),
		newInitCmd(),
	)
	return rootCmd
}

// Execute runs the command tree and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
}

func setup(cmd *cobra.Command, _ []string) error {
	if container == nil {
		return errors.New("dependency container not initialized")
	}

	cfg, configPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.Output.Color {
		color.NoColor = true
	}

	logger, err := logging.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a := &app{
		cfg:        cfg,
		configPath: configPath,
		logger:     logger,
		querier:    container.CreateQuerier(logger, cfg.Reader.BufferSize),
		printer:    newPrinter(cmd.OutOrStdout(), cfg.Output),
	}
	cmd.SetContext(context.WithValue(cmd.Context(), appKey, a))
	return nil
}

// loadConfig reads the config file when it exists, otherwise defaults and
// environment, then applies flags that were set explicitly
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	var cfg *config.Config
	var err error
	if config.ConfigExists(configPath) {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadEnv()
	}
	if err != nil {
		return nil, "", err
	}

	if flags.Changed("data-dir") {
		cfg.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		cfg.Output.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, configPath, nil
}
