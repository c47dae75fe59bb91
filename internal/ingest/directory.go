package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirStats summarizes a directory discovery pass.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Deduplicated uint32
}

// DiscoverScans walks root and returns the scan files to process, in walk
// order. Hidden files and directories are skipped when skipHidden is set.
// Byte-identical scans (same SHA-256) are reported once; later duplicates
// only bump the Deduplicated counter.
func DiscoverScans(root string, skipHidden bool) ([]string, DirStats, error) {
	var stats DirStats
	if strings.TrimSpace(root) == "" {
		return nil, stats, errors.New("root path is required")
	}

	seen := map[string]string{} // hash -> first path
	var out []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if skipHidden && isHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if !isScan(path) {
			return nil
		}
		stats.Matched++

		sum, err := hashFile(path)
		if err != nil {
			return fmt.Errorf("hash %s: %w", path, err)
		}
		if _, dup := seen[sum]; dup {
			stats.Deduplicated++
			return nil
		}
		seen[sum] = path
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
