// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"slices"
	"strings"
)

// String renders the pipeline as source text that parses back to an equal
// pipeline. Env assignments are written in key order.
func (p *Pipeline) String() string {
	var sb strings.Builder
	for i, cmd := range p.Commands {
		if i > 0 {
			op := p.Operators[i-1]
			if op == OpSequence {
				sb.WriteString("; ")
			} else {
				sb.WriteString(" " + op.Symbol() + " ")
			}
		}
		sb.WriteString(cmd.String())
	}
	return sb.String()
}

func (c Command) String() string {
	var words []string
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		words = append(words, k+"="+quoteTail(c.Env[k]))
	}

	if assignmentRE.MatchString(c.Name) {
		words = append(words, forceQuote(c.Name))
	} else {
		words = append(words, Quote(c.Name))
	}
	for _, a := range c.Args {
		words = append(words, a.String())
	}

	if r := c.Redirect; r != nil {
		if r.Stdin != "" {
			words = append(words, "<", Quote(r.Stdin))
		}
		if r.Stdout != "" {
			op := ">"
			if r.Append {
				op = ">>"
			}
			words = append(words, op, Quote(r.Stdout))
		}
	}
	return strings.Join(words, " ")
}

func (a Argument) String() string {
	switch a.Kind {
	case ArgFlag:
		var prefix string
		switch {
		case a.Name == "" && !a.HasValue:
			return "---"
		case len(a.Name) == 1:
			prefix = "-"
		default:
			prefix = "--"
		}
		if a.HasValue {
			return prefix + quoteTail(a.Name) + "=" + quoteTail(a.Value)
		}
		return prefix + quoteTail(a.Name)
	default:
		if strings.HasPrefix(a.Value, "-") {
			return forceQuote(a.Value)
		}
		return Quote(a.Value)
	}
}

// Quote returns s unchanged when it scans as a single Word with the same
// value, and single-quoted otherwise.
func Quote(s string) string {
	if s == "" || isDigit(s[0]) || s[0] == '#' {
		return forceQuote(s)
	}
	return quoteTail(s)
}

// quoteTail quotes s for use after the start of a word, as in NAME=s or
// --flag=s, where a leading digit or # needs no quoting.
func quoteTail(s string) string {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case isSpace(c), c < 0x20, c == 0x7f:
			return forceQuote(s)
		case strings.IndexByte(`'"\|&;<>`, c) >= 0:
			return forceQuote(s)
		}
	}
	return s
}

// forceQuote wraps s in single quotes, or in double quotes when s itself
// contains a single quote, so the result scans as one String token.
func forceQuote(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\', '$', '`':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
