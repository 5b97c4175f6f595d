// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package complete

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const readBatch = 256

var errTruncated = errors.New("directory scan truncated")

// completeFiles lists entries of the directory named by seed's directory
// part that match its base name. Dot files are offered only when the base
// name starts with a dot. Directories sort before files.
func (e *Engine) completeFiles(ctx context.Context, seed, cwd string, env map[string]string) []Item {
	dirPart, base := filepath.Split(seed)

	dir := dirPart
	if home := env["HOME"]; home != "" && strings.HasPrefix(dir, "~/") {
		dir = filepath.Join(home, dir[2:])
	}
	switch {
	case dir == "":
		dir = cwd
	case !filepath.IsAbs(dir):
		dir = filepath.Join(cwd, dir)
	}
	if dir == "" {
		dir = "."
	}

	entries, err := readDir(ctx, dir, e.maxEntries)
	switch {
	case errors.Is(err, errTruncated):
		e.logger.Debug("file completion truncated", zap.String("dir", dir), zap.Int("max_entries", e.maxEntries))
	case err != nil:
		e.logger.Debug("file completion failed", zap.String("dir", dir), zap.Error(err))
		return nil
	}

	lowerBase := strings.ToLower(base)
	showHidden := strings.HasPrefix(base, ".")
	var items []Item
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") && !showHidden {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(name), lowerBase) {
			continue
		}
		item := Item{Value: dirPart + name, Display: name, Category: CategoryFile}
		if isDir(entry, dir) {
			item.Value += "/"
			item.Display += "/"
			item.Category = CategoryDirectory
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		di, dj := items[i].Category == CategoryDirectory, items[j].Category == CategoryDirectory
		if di != dj {
			return di
		}
		li, lj := strings.ToLower(items[i].Display), strings.ToLower(items[j].Display)
		if li != lj {
			return li < lj
		}
		return items[i].Display < items[j].Display
	})
	return items
}

// isDir reports whether entry is a directory, following symlinks.
func isDir(entry fs.DirEntry, dir string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}

// readDir reads at most limit entries from dir, checking ctx between
// batches. When the limit cuts the listing short it returns the entries
// read so far together with errTruncated.
func readDir(ctx context.Context, dir string, limit int) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []fs.DirEntry
	for len(out) < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch, err := f.ReadDir(min(readBatch, limit-len(out)))
		out = append(out, batch...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
	// Probe for one more entry to tell "exactly limit" from "more".
	if more, _ := f.ReadDir(1); len(more) > 0 {
		return out, errTruncated
	}
	return out, nil
}
