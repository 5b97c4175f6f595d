// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/marcelocantos/shellfront/internal/complete"
	"github.com/marcelocantos/shellfront/internal/value"
)

// RunComplete prints completion candidates for req.
func RunComplete(ctx context.Context, e *complete.Engine, w, stderr io.Writer, req complete.Request, format Format) int {
	return printItems(w, stderr, "complete", e.Complete(ctx, req), format)
}

func printItems(w, stderr io.Writer, cmd string, items []complete.Item, format Format) int {
	if format == FormatJSON {
		data, err := value.Marshal(complete.Export(items))
		if err != nil {
			return resolveError(stderr, cmd, err)
		}
		fmt.Fprintf(w, "%s\n", data)
		return 0
	}
	for _, it := range items {
		if it.Description != "" {
			fmt.Fprintf(w, "%s\t%s\n", it.Value, it.Description)
			continue
		}
		fmt.Fprintln(w, it.Value)
	}
	return 0
}
