// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/marcelocantos/shellfront/internal/pipeline"
)

// Format selects how handlers render results.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value. "auto" resolves to JSON unless
// stdout is a terminal.
func ParseFormat(s string, terminal bool) (Format, error) {
	switch s {
	case "", "auto":
		if terminal {
			return FormatText, nil
		}
		return FormatJSON, nil
	case string(FormatText), string(FormatJSON):
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or auto)", s)
	}
}

// Environ returns the process environment as a map.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}
	return env
}

// resolveError reports err on stderr and maps it to an exit code: 1 for
// input the tokenizer or parser rejected, 2 for anything else.
func resolveError(stderr io.Writer, cmd string, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "shellfront %s: %v\n", cmd, err)
	if isInputError(err) {
		return 1
	}
	return 2
}

func isInputError(err error) bool {
	var tokErr *pipeline.TokenizeError
	var parseErr *pipeline.ParseError
	return errors.As(err, &tokErr) || errors.As(err, &parseErr)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
