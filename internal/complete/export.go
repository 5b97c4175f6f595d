// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package complete

import "github.com/marcelocantos/shellfront/internal/value"

// Export converts items to a list of records with the fields value,
// display, description and category, so completions can flow through the
// same rendering as any other shell value. Empty display and description
// fields become null.
func Export(items []Item) value.List {
	rows := make([]value.Value, len(items))
	for i, it := range items {
		rows[i] = value.NewRecord(
			value.F("value", value.NewStr(it.Value)),
			value.F("display", optional(it.Display)),
			value.F("description", optional(it.Description)),
			value.F("category", value.NewStr(string(it.Category))),
		)
	}
	return value.NewList(rows...)
}

func optional(s string) value.Value {
	if s == "" {
		return value.Nil()
	}
	return value.NewStr(s)
}
