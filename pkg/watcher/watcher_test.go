package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, debounce time.Duration) *FileWatcher {
	t.Helper()
	fw, err := NewFileWatcher(debounce, nil)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go fw.Run(ctx)
	t.Cleanup(func() {
		cancel()
		fw.Close()
	})
	return fw
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestFileWatcher_CallsBackOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	writeFile(t, path, "models: []\n")

	fw := startWatcher(t, 20*time.Millisecond)
	changed := make(chan string, 10)
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	writeFile(t, path, "depth: 3\n")

	select {
	case got := <-changed:
		if got != path {
			t.Errorf("Expected callback for %s, got %s", path, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for change callback")
	}
}

func TestFileWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	writeFile(t, path, "models: []\n")

	fw := startWatcher(t, 300*time.Millisecond)
	changed := make(chan string, 10)
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		writeFile(t, path, "depth: 1\n")
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for change callback")
	}

	select {
	case <-changed:
		t.Error("Expected a burst of writes to produce a single callback")
	case <-time.After(600 * time.Millisecond):
	}
}

func TestFileWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	writeFile(t, path, "models: []\n")

	fw := startWatcher(t, 20*time.Millisecond)
	changed := make(chan string, 10)
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	writeFile(t, filepath.Join(dir, "other.txt"), "noise")

	select {
	case got := <-changed:
		t.Errorf("Unexpected callback for %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcher_Replace(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.obj")
	second := filepath.Join(dir, "second.obj")
	writeFile(t, first, "")
	writeFile(t, second, "")

	fw := startWatcher(t, 20*time.Millisecond)
	noop := func(string) {}
	if err := fw.Watch([]string{first}, noop); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := fw.Replace([]string{second}, noop); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	files := fw.Files()
	if len(files) != 1 || files[0] != second {
		t.Errorf("Expected only %s to be watched, got %v", second, files)
	}
}

func TestFileWatcher_MissingDirectory(t *testing.T) {
	fw := startWatcher(t, time.Millisecond)
	if err := fw.Watch([]string{filepath.Join(t.TempDir(), "gone", "scene.yaml")}, func(string) {}); err == nil {
		t.Error("Expected error watching a file in a missing directory")
	}
}
