// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/marcelocantos/shellfront/internal/pipeline"
)

// BatchResult is the outcome of parsing one input line.
type BatchResult struct {
	Line      int                `json:"line"`
	Input     string             `json:"input"`
	Pipeline  *pipeline.Pipeline `json:"pipeline,omitempty"`
	Canonical string             `json:"canonical,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// ParseBatch parses every non-blank line of r, at most jobs at a time.
// Results come back in input order. A line that fails to parse records
// its error; only read failures and cancellation abort the batch.
func ParseBatch(ctx context.Context, r io.Reader, jobs int, logger *zap.Logger) ([]BatchResult, error) {
	var results []BatchResult
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		results = append(results, BatchResult{Line: n, Input: sc.Text()})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := &results[i]
			p, err := pipeline.ParseString(res.Input)
			if err != nil {
				logger.Debug("batch line rejected", zap.Int("line", res.Line), zap.Error(err))
				res.Error = err.Error()
				return nil
			}
			res.Pipeline = p
			res.Canonical = p.String()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunBatch parses the lines of r and prints one result per line. It exits
// 1 if any line failed to parse.
func RunBatch(ctx context.Context, r io.Reader, w, stderr io.Writer, jobs int, format Format, logger *zap.Logger) int {
	results, err := ParseBatch(ctx, r, jobs, logger)
	if err != nil {
		return resolveError(stderr, "batch", err)
	}

	failed := 0
	if format == FormatJSON {
		if err := writeJSON(w, results); err != nil {
			return resolveError(stderr, "batch", err)
		}
		for _, res := range results {
			if res.Error != "" {
				failed++
			}
		}
	} else {
		for _, res := range results {
			if res.Error != "" {
				failed++
				fmt.Fprintf(w, "%d: error: %s\n", res.Line, res.Error)
				continue
			}
			fmt.Fprintf(w, "%d: %s\n", res.Line, res.Canonical)
		}
	}

	if failed > 0 {
		fmt.Fprintf(stderr, "shellfront batch: %d of %d lines failed to parse\n", failed, len(results))
		return 1
	}
	return 0
}
