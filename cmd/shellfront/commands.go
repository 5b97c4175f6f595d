// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcelocantos/shellfront/internal/cli"
	"github.com/marcelocantos/shellfront/internal/complete"
	"github.com/marcelocantos/shellfront/internal/server"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [input...]",
	Short: "Print the tokens of shell input (read from stdin when no input is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := inputFrom(cmd, args)
		if err != nil {
			return err
		}
		exitCode = cli.RunTokenize(cmd.OutOrStdout(), cmd.ErrOrStderr(), input, format)
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [input...]",
	Short: "Parse shell input and print its canonical form or AST",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := inputFrom(cmd, args)
		if err != nil {
			return err
		}
		exitCode = cli.RunParse(cmd.OutOrStdout(), cmd.ErrOrStderr(), input, format)
		return nil
	},
}

var (
	cursorFlag int
	cwdFlag    string
)

var completeCmd = &cobra.Command{
	Use:   "complete <input>",
	Short: "Print completion candidates for partial shell input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd := cwdFlag
		if cwd == "" {
			cwd, _ = os.Getwd()
		}
		cursor := cursorFlag
		if cursor < 0 {
			cursor = len(args[0])
		}
		req := complete.Request{Input: args[0], Cursor: cursor, Cwd: cwd, Env: cli.Environ()}
		exitCode = cli.RunComplete(cmd.Context(), engine, cmd.OutOrStdout(), cmd.ErrOrStderr(), req, format)
		return nil
	},
}

var jobsFlag int

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Parse one pipeline per line of a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		exitCode = cli.RunBatch(cmd.Context(), r, cmd.OutOrStdout(), cmd.ErrOrStderr(), jobsFlag, format, logger)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Record and search command history",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("history file %s is unavailable", cfg.History.Path)
		}
		return nil
	},
}

var historyAddCmd = &cobra.Command{
	Use:   "add <line...>",
	Short: "Append a line to the history",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		exitCode = cli.RunHistoryAdd(store, cmd.OutOrStdout(), cmd.ErrOrStderr(), strings.Join(args, " "), cwd)
		return nil
	},
}

var showCount int

var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the most recent history entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exitCode = cli.RunHistoryShow(cmd.Context(), store, cmd.OutOrStdout(), cmd.ErrOrStderr(), showCount, format)
		return nil
	},
}

var searchLimit int

var historySearchCmd = &cobra.Command{
	Use:   "search [prefix]",
	Short: "Print distinct history lines starting with prefix, most recent first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		limit := searchLimit
		if !cmd.Flags().Changed("limit") {
			limit = cfg.History.MaxResults
		}
		exitCode = cli.RunHistorySearch(cmd.Context(), engine, cmd.OutOrStdout(), cmd.ErrOrStderr(), prefix, limit, format)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve tokenize, parse and complete as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := server.New(engine, version, server.WithLogger(logger), server.WithMaxResults(cfg.History.MaxResults))
		return s.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "shellfront %s\n", version)
	},
}

func init() {
	completeCmd.Flags().IntVar(&cursorFlag, "cursor", -1, "cursor byte offset (default end of input)")
	completeCmd.Flags().StringVar(&cwdFlag, "cwd", "", "directory for relative paths (default working directory)")
	batchCmd.Flags().IntVarP(&jobsFlag, "jobs", "j", runtime.NumCPU(), "lines parsed concurrently")
	historyShowCmd.Flags().IntVarP(&showCount, "count", "n", 20, "number of entries (0 for all)")
	historySearchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum results (default history.max_results)")

	historyCmd.AddCommand(historyAddCmd, historyShowCmd, historySearchCmd)
	rootCmd.AddCommand(tokenizeCmd, parseCmd, completeCmd, batchCmd, historyCmd, serveCmd, versionCmd)
}

// inputFrom joins args into one line of input, or reads stdin when there
// are none.
func inputFrom(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
