// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package complete

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// HistorySource supplies previously entered lines.
type HistorySource interface {
	// Recent returns up to n lines, most recent first.
	Recent(ctx context.Context, n int) ([]string, error)
}

// CompleteHistory returns distinct history lines starting with prefix,
// most recent first, at most limit of them (all when limit <= 0). Only the
// most recent lines within the history window are searched.
func (e *Engine) CompleteHistory(ctx context.Context, prefix string, limit int) []Item {
	if e.history == nil {
		return nil
	}
	lines, err := e.history.Recent(ctx, e.historyWindow)
	if err != nil {
		e.logger.Debug("history completion failed", zap.Error(err))
		return nil
	}
	seen := make(map[string]bool)
	var items []Item
	for _, line := range lines {
		if seen[line] || !strings.HasPrefix(line, prefix) {
			continue
		}
		seen[line] = true
		items = append(items, Item{Value: line, Category: CategoryHistory})
		if limit > 0 && len(items) == limit {
			break
		}
	}
	return items
}
