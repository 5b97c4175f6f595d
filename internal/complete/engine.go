// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package complete produces completion candidates for partially typed
// shell input. It works on raw text with its own word splitting rather
// than on a parsed pipeline, so it tolerates input that does not parse yet.
package complete

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Category classifies a completion candidate by its source.
type Category string

const (
	CategoryCommand   Category = "command"
	CategoryFile      Category = "file"
	CategoryDirectory Category = "directory"
	CategoryEnv       Category = "env"
	CategoryHistory   Category = "history"
	CategoryFlag      Category = "flag"
)

// Item is a single completion candidate.
type Item struct {
	Value       string   `json:"value"`
	Display     string   `json:"display,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
}

// Request is the input to Complete. Cursor is a byte offset into Input
// and is clamped to the input's bounds.
type Request struct {
	Input  string
	Cursor int
	Cwd    string
	Env    map[string]string
}

// Command is a registered command name with the flags offered for it.
type Command struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Flags       []string `json:"flags,omitempty"`
}

const (
	// DefaultMaxEntries caps how many directory entries one file
	// completion reads.
	DefaultMaxEntries = 1000

	// DefaultHistoryWindow is how many recent history lines
	// CompleteHistory searches.
	DefaultHistoryWindow = 1000

	envDescriptionLen = 50
)

// Engine owns the command registry and answers completion requests.
// Registration and completion may run concurrently.
type Engine struct {
	mu       sync.RWMutex
	commands map[string]Command

	maxEntries    int
	history       HistorySource
	historyWindow int
	logger        *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for swallowed filesystem errors.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxEntries bounds the directory entries scanned per file completion.
func WithMaxEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxEntries = n
		}
	}
}

// WithHistoryWindow bounds how many recent lines CompleteHistory reads
// from its source.
func WithHistoryWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.historyWindow = n
		}
	}
}

// WithHistory sets the source used by CompleteHistory.
func WithHistory(h HistorySource) Option {
	return func(e *Engine) { e.history = h }
}

// New returns an engine pre-seeded with the shell builtins.
func New(opts ...Option) *Engine {
	e := &Engine{
		commands:      make(map[string]Command),
		maxEntries:    DefaultMaxEntries,
		historyWindow: DefaultHistoryWindow,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, c := range Builtins() {
		e.RegisterCommand(c)
	}
	return e
}

// Register adds a command name. Flags, when given, replace any flags
// already associated with the name.
func (e *Engine) Register(name string, flags ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.commands[name]
	if !ok {
		c = Command{Name: name}
	}
	if len(flags) > 0 {
		c.Flags = slices.Clone(flags)
	}
	e.commands[name] = c
}

// RegisterCommand adds or replaces a command.
func (e *Engine) RegisterCommand(c Command) {
	c.Flags = slices.Clone(c.Flags)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commands[c.Name] = c
}

// Lookup returns a registered command by exact name.
func (e *Engine) Lookup(name string) (Command, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.commands[name]
	c.Flags = slices.Clone(c.Flags)
	return c, ok
}

// Commands returns all registered commands sorted by name.
func (e *Engine) Commands() []Command {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Command, 0, len(e.commands))
	for _, c := range e.commands {
		c.Flags = slices.Clone(c.Flags)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Complete returns candidates for the word under the cursor. Exactly one
// strategy applies per request, chosen in this order: command names while
// in the first word, flags for a word starting with "-", environment
// variables for a word starting with "$", and file names otherwise.
// Failures never surface; they yield no candidates.
func (e *Engine) Complete(ctx context.Context, req Request) []Item {
	cursor := min(max(req.Cursor, 0), len(req.Input))
	before := req.Input[:cursor]
	words := strings.Fields(before)
	trailingSpace := before != "" && isSpace(before[len(before)-1])

	var current string
	if len(words) > 0 && !trailingSpace {
		current = words[len(words)-1]
	}

	switch {
	case len(words) == 1 && !trailingSpace:
		return e.completeCommands(current)
	case strings.HasPrefix(current, "-"):
		return e.completeFlags(words[0], current)
	case strings.HasPrefix(current, "$"):
		return completeEnv(current[1:], req.Env)
	default:
		return e.completeFiles(ctx, current, req.Cwd, req.Env)
	}
}

func (e *Engine) completeCommands(prefix string) []Item {
	lower := strings.ToLower(prefix)
	var items []Item
	for _, c := range e.Commands() {
		if strings.HasPrefix(strings.ToLower(c.Name), lower) {
			items = append(items, Item{Value: c.Name, Description: c.Description, Category: CategoryCommand})
		}
	}
	return items
}

// completeFlags offers the command's flags in registration order.
func (e *Engine) completeFlags(command, prefix string) []Item {
	c, ok := e.Lookup(command)
	if !ok {
		return nil
	}
	var items []Item
	for _, f := range c.Flags {
		if strings.HasPrefix(f, prefix) {
			items = append(items, Item{Value: f, Category: CategoryFlag})
		}
	}
	return items
}

func completeEnv(prefix string, env map[string]string) []Item {
	lower := strings.ToLower(prefix)
	names := make([]string, 0, len(env))
	for k := range env {
		if strings.HasPrefix(strings.ToLower(k), lower) {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	items := make([]Item, 0, len(names))
	for _, k := range names {
		items = append(items, Item{
			Value:       "$" + k,
			Description: truncate(env[k], envDescriptionLen),
			Category:    CategoryEnv,
		})
	}
	return items
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
