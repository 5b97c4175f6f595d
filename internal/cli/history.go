// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/marcelocantos/shellfront/internal/complete"
	"github.com/marcelocantos/shellfront/internal/history"
)

// RunHistoryAdd records line in the history store.
func RunHistoryAdd(store *history.Store, w, stderr io.Writer, line, cwd string) int {
	e, err := store.Add(line, cwd)
	if err != nil {
		return resolveError(stderr, "history", err)
	}
	if e.Seq == 0 {
		fmt.Fprintln(stderr, "shellfront history: ignoring blank line")
		return 1
	}
	fmt.Fprintf(w, "%d\n", e.Seq)
	return 0
}

// RunHistoryShow prints the last n entries, oldest first.
func RunHistoryShow(ctx context.Context, store *history.Store, w, stderr io.Writer, n int, format Format) int {
	entries, err := store.Tail(ctx, n)
	if err != nil {
		return resolveError(stderr, "history", err)
	}
	if format == FormatJSON {
		if entries == nil {
			entries = []history.Entry{}
		}
		return resolveError(stderr, "history", writeJSON(w, entries))
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "no history entries")
		return 0
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%5d  %s\n", e.Seq, e.Line)
	}
	return 0
}

// RunHistorySearch prints distinct history lines starting with prefix,
// most recent first.
func RunHistorySearch(ctx context.Context, e *complete.Engine, w, stderr io.Writer, prefix string, limit int, format Format) int {
	items := e.CompleteHistory(ctx, strings.TrimLeft(prefix, " \t"), limit)
	return printItems(w, stderr, "history", items, format)
}
