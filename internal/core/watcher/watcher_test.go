// # internal/core/watcher/watcher_test.go
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func startWatcher(t *testing.T, root string, accept func(string) bool) <-chan []string {
	t.Helper()
	changed := make(chan []string, 8)
	w, err := New(50*time.Millisecond, DefaultSkipDirs, accept, func(paths []string) {
		changed <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Add(root); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return changed
}

func waitFor(t *testing.T, changed <-chan []string, want string) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case paths := <-changed:
			if slices.Contains(paths, want) {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for change to %s", want)
		}
	}
}

func TestNew_RejectsNilCallback(t *testing.T) {
	w, err := New(100*time.Millisecond, nil, nil, nil)
	if !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("expected os.ErrInvalid, got %v", err)
	}
	if w != nil {
		t.Fatal("expected nil watcher when callback is invalid")
	}
}

func TestNew_RejectsBadGlob(t *testing.T) {
	if _, err := New(time.Millisecond, []string{"[unclosed"}, nil, func([]string) {}); err == nil {
		t.Fatal("expected glob compile error")
	}
}

func TestWatcher_ReportsAcceptedFiles(t *testing.T) {
	root := t.TempDir()
	changed := startWatcher(t, root, func(path string) bool {
		return strings.HasSuffix(path, ".go")
	})

	ignored := filepath.Join(root, "notes.txt")
	if err := os.WriteFile(ignored, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(root, "main.go")
	if err := os.WriteFile(src, []byte("package main"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case paths := <-changed:
			if slices.Contains(paths, ignored) {
				t.Fatalf("rejected file reported: %v", paths)
			}
			if slices.Contains(paths, src) {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for main.go")
		}
	}
}

func TestWatcher_NewDirectoryIsWatched(t *testing.T) {
	root := t.TempDir()
	changed := startWatcher(t, root, nil)

	sub := filepath.Join(root, "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(sub, "lib.rs")
	if err := os.WriteFile(nested, []byte("fn a() {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changed, nested)
}

func TestWatcher_RenameTriggersChange(t *testing.T) {
	root := t.TempDir()
	oldPath := filepath.Join(root, "old.py")
	newPath := filepath.Join(root, "new.py")
	if err := os.WriteFile(oldPath, []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	changed := startWatcher(t, root, nil)

	if err := os.Rename(oldPath, newPath); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changed, newPath)
}

func TestWatcher_SkipsDirectories(t *testing.T) {
	root := t.TempDir()
	w, err := New(time.Millisecond, DefaultSkipDirs, nil, func([]string) {})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	for _, dir := range []string{".git", "node_modules", "target"} {
		if !w.skipDir(filepath.Join(root, dir)) {
			t.Errorf("expected %s to be skipped", dir)
		}
	}
	if w.skipDir(filepath.Join(root, "src")) {
		t.Error("src should not be skipped")
	}
}
