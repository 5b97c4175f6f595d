// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAddAndRecent(t *testing.T) {
	s := openTemp(t)
	for _, line := range []string{"ls", "git status", "  ", "make test"} {
		if _, err := s.Add(line, "/tmp"); err != nil {
			t.Fatalf("add %q: %v", line, err)
		}
	}

	got, err := s.Recent(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"make test", "git status", "ls"}
	if !slices.Equal(got, want) {
		t.Errorf("Recent = %q, want %q", got, want)
	}

	got, err = s.Recent(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, want[:2]) {
		t.Errorf("Recent(2) = %q, want %q", got, want[:2])
	}
}

func TestSequenceResumes(t *testing.T) {
	s := openTemp(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	for range 3 {
		if _, err := s.Add("pwd", ""); err != nil {
			t.Fatal(err)
		}
	}

	reopened, err := Open(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	e, err := reopened.Add("whoami", "/home")
	if err != nil {
		t.Fatal(err)
	}
	if e.Seq != 4 {
		t.Errorf("seq = %d, want 4", e.Seq)
	}

	entries, err := reopened.Tail(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	if !entries[0].Time.Equal(fixed) {
		t.Errorf("time = %v, want %v", entries[0].Time, fixed)
	}
	if entries[3].Cwd != "/home" {
		t.Errorf("cwd = %q, want /home", entries[3].Cwd)
	}
}

func TestTailSkipsMalformed(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Add("first", ""); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(s.Path(), os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("not json\n\n")
	f.Close()
	if _, err := s.Add("second", ""); err != nil {
		t.Fatal(err)
	}

	got, err := s.Recent(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"second", "first"}; !slices.Equal(got, want) {
		t.Errorf("Recent = %q, want %q", got, want)
	}
}

func TestRecentMissingFile(t *testing.T) {
	s := openTemp(t)
	got, err := s.Recent(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Recent = %q, want empty", got)
	}
}

func TestTailCancelled(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Add("x", ""); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Tail(ctx, 0); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestConcurrentAdd(t *testing.T) {
	s := openTemp(t)
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Add("echo hi", ""); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	entries, err := s.Tail(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 20 {
		t.Fatalf("got %d entries, want 20", len(entries))
	}
	for i, e := range entries {
		if e.Seq != uint64(i+1) {
			t.Errorf("entry %d seq = %d", i, e.Seq)
		}
	}
}
