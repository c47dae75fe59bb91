package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverScans(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "2023-05-10", "A01.jpg"), []byte("front page"))
	writeFile(t, filepath.Join(root, "2023-05-10", "A02.png"), []byte("page two"))
	writeFile(t, filepath.Join(root, "2023-05-10", "A01-copy.jpg"), []byte("front page")) // duplicate bytes
	writeFile(t, filepath.Join(root, "2023-05-10", "notes.txt"), []byte("not a scan"))
	writeFile(t, filepath.Join(root, ".staging", "A03.jpg"), []byte("hidden"))

	paths, stats, err := DiscoverScans(root, true)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v, want 2 unique scans", paths)
	}
	if stats.Scanned != 4 || stats.Matched != 3 || stats.Deduplicated != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestDiscoverScansEmptyRoot(t *testing.T) {
	t.Parallel()

	if _, _, err := DiscoverScans("  ", false); err == nil {
		t.Fatal("expected error for blank root")
	}
}

func TestWatcherInitialScan(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "B05.tiff"), []byte("scan"))
	writeFile(t, filepath.Join(root, "skip.pdf"), []byte("doc"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true})
	if err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	select {
	case p := <-evCh:
		if filepath.Base(p) != "B05.tiff" {
			t.Fatalf("emitted %q, want B05.tiff", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no scan emitted from initial walk")
	}
}

func TestWatcherRequiresRoots(t *testing.T) {
	t.Parallel()

	if _, _, err := StartWatcher(context.Background(), WatchConfig{}); err == nil {
		t.Fatal("expected error when no roots configured")
	}
}
