// Package watcher detects source changes between polling cycles by
// comparing filename-to-mtime snapshots. Nothing is persisted; the
// snapshot lives in the orchestrator's memory.
package watcher

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fcolobe/data-engineer-challenge/internal/source"
)

// Snapshot maps a watched filename to its last-modified time.
type Snapshot map[string]time.Time

// Changes is one polling cycle's file-set delta. The three sets are
// unordered.
type Changes struct {
	Added    map[string]struct{}
	Removed  map[string]struct{}
	Modified map[string]struct{}
}

// Any reports whether the cycle saw any file-set change.
func (c Changes) Any() bool {
	return len(c.Added) > 0 || len(c.Removed) > 0 || len(c.Modified) > 0
}

// Take builds the current snapshot of watched .pdf/.docx files in dir.
// An unreadable directory yields an empty snapshot.
func Take(dir string) Snapshot {
	snap := make(Snapshot)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return snap
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !source.IsCandidateFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		snap[entry.Name()] = info.ModTime()
	}
	return snap
}

// Diff compares the directory's current state against prev and returns
// the delta together with the new snapshot.
func Diff(dir string, prev Snapshot) (Changes, Snapshot) {
	current := Take(dir)

	changes := Changes{
		Added:    make(map[string]struct{}),
		Removed:  make(map[string]struct{}),
		Modified: make(map[string]struct{}),
	}
	for name, mtime := range current {
		prevTime, existed := prev[name]
		if !existed {
			changes.Added[name] = struct{}{}
		} else if !mtime.Equal(prevTime) {
			changes.Modified[name] = struct{}{}
		}
	}
	for name := range prev {
		if _, exists := current[name]; !exists {
			changes.Removed[name] = struct{}{}
		}
	}
	return changes, current
}

// ModTime returns the last-modified time of the file at path.
func ModTime(path string) (time.Time, error) {
	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// SpreadsheetChanged reports whether the file's current modification time
// differs from prev. A file that cannot be stat'ed reports no change; the
// pass that depends on it surfaces the real error.
func SpreadsheetChanged(path string, prev time.Time) bool {
	current, err := ModTime(path)
	if err != nil {
		return false
	}
	return !current.Equal(prev)
}
