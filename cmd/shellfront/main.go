// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/marcelocantos/shellfront/internal/cli"
	"github.com/marcelocantos/shellfront/internal/complete"
	"github.com/marcelocantos/shellfront/internal/config"
	"github.com/marcelocantos/shellfront/internal/history"
)

var version = "dev"

var (
	configPath string
	verbose    bool
	formatFlag string

	// Set up by PersistentPreRunE.
	cfg      *config.Config
	logger   *zap.Logger
	engine   *complete.Engine
	store    *history.Store
	format   cli.Format
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:           "shellfront",
	Short:         "Shell-language front end: tokenizer, parser and completion engine",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	var long strings.Builder
	cli.PrintSyntax(&long)
	rootCmd.Long = long.String()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/shellfront/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "auto", "output format: text, json or auto")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shellfront: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func setup() error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	logger, err = zcfg.Build()
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	fd := os.Stdout.Fd()
	format, err = cli.ParseFormat(formatFlag, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	if err != nil {
		return err
	}

	store, err = history.Open(cfg.History.Path)
	if err != nil {
		// Continue without history.
		logger.Warn("history unavailable", zap.String("path", cfg.History.Path), zap.Error(err))
		store = nil
	}

	opts := append(cfg.EngineOptions(), complete.WithLogger(logger))
	if store != nil {
		opts = append(opts, complete.WithHistory(store))
	}
	engine = complete.New(opts...)
	return cfg.Apply(engine)
}
