// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/marcelocantos/shellfront/internal/pipeline"
)

// RunParse parses input. Text output is the canonical rendering of the
// pipeline; JSON output is its AST.
func RunParse(w, stderr io.Writer, input string, format Format) int {
	p, err := pipeline.ParseString(input)
	if err != nil {
		return resolveError(stderr, "parse", err)
	}
	if format == FormatJSON {
		return resolveError(stderr, "parse", writeJSON(w, p))
	}
	fmt.Fprintln(w, p)
	return 0
}
