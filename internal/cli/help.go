// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/marcelocantos/shellfront/internal/pipeline"
)

// PrintSyntax writes a summary of the accepted shell syntax.
func PrintSyntax(w io.Writer) {
	fmt.Fprintln(w, "shellfront — shell-language front end: tokenizer, parser and completion")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "pipeline operators:")
	fmt.Fprintf(w, "  %-3s pipe (stdout → stdin)\n", pipeline.OpPipe.Symbol())
	fmt.Fprintf(w, "  %-3s and-then (run next if previous succeeded)\n", pipeline.OpAnd.Symbol())
	fmt.Fprintf(w, "  %-3s or-else (run next if previous failed)\n", pipeline.OpOr.Symbol())
	fmt.Fprintf(w, "  %-3s sequential (run next regardless)\n", pipeline.OpSequence.Symbol())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "redirects:")
	fmt.Fprintln(w, "  >   redirect stdout to file")
	fmt.Fprintln(w, "  >>  append stdout to file")
	fmt.Fprintln(w, "  <   redirect stdin from file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "words: 'single' and \"double\" quotes, \\ escapes, # comments,")
	fmt.Fprintln(w, "NAME=value assignments before the command name, -f/--flag[=value] flags.")
}
