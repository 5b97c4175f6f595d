// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/marcelocantos/shellfront/internal/pipeline"
)

// RunTokenize prints the tokens of input.
func RunTokenize(w, stderr io.Writer, input string, format Format) int {
	tokens, err := pipeline.Tokenize(input)
	if err != nil {
		return resolveError(stderr, "tokenize", err)
	}
	if format == FormatJSON {
		return resolveError(stderr, "tokenize", writeJSON(w, tokens))
	}
	for _, t := range tokens {
		if t.Type == pipeline.TokenEOF {
			fmt.Fprintf(w, "%4d  %s\n", t.Pos, t.Type)
			continue
		}
		fmt.Fprintf(w, "%4d  %-15s %q\n", t.Pos, t.Type, t.Value)
	}
	return 0
}
