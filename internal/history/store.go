// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package history keeps an append-only JSONL record of entered lines.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Entry is a single history record.
type Entry struct {
	Seq  uint64    `json:"seq"`
	Time time.Time `json:"ts"`
	Line string    `json:"line"`
	Cwd  string    `json:"cwd,omitempty"`
}

// Store is an append-only history file. It is safe for concurrent use
// within one process.
type Store struct {
	mu   sync.Mutex
	path string
	seq  uint64
	now  func() time.Time
}

// Open opens or creates a history file at path, resuming the sequence
// from its last entry.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	s := &Store{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		lines := splitLines(data)
		for i := len(lines) - 1; i >= 0; i-- {
			var last Entry
			if json.Unmarshal(lines[i], &last) == nil {
				s.seq = last.Seq
				break
			}
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read history: %w", err)
	}
	return s, nil
}

// Path returns the history file path.
func (s *Store) Path() string {
	return s.path
}

// Add appends line. Blank lines are ignored.
func (s *Store) Add(line, cwd string) (Entry, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Entry{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		Seq:  s.seq + 1,
		Time: s.now().UTC(),
		Line: line,
		Cwd:  cwd,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal history entry: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return Entry{}, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return Entry{}, fmt.Errorf("write history entry: %w", err)
	}
	s.seq = entry.Seq
	return entry, nil
}

// Tail returns the last n entries in file order, or all of them when
// n <= 0. Malformed lines are skipped.
func (s *Store) Tail(ctx context.Context, n int) ([]Entry, error) {
	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	lines := splitLines(data)
	entries := make([]Entry, 0, len(lines))
	for i, line := range lines {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if n > 0 && n < len(entries) {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Recent returns up to n lines, most recent first.
func (s *Store) Recent(ctx context.Context, n int) ([]string, error) {
	entries, err := s.Tail(ctx, n)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[len(entries)-1-i] = e.Line
	}
	return lines, nil
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if len(bytes.TrimSpace(line)) > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}
