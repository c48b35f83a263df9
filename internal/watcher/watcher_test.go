package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestDiff_AddedRemovedModified(t *testing.T) {
	dir := t.TempDir()
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t1.Add(2 * time.Hour)
	t4 := t1.Add(3 * time.Hour)

	writeFile(t, dir, "a.pdf", t1)
	bPath := writeFile(t, dir, "b.docx", t2)
	prev := Take(dir)
	require.Len(t, prev, 2)

	// b.docx rewritten, c.pdf appears.
	require.NoError(t, os.Chtimes(bPath, t3, t3))
	writeFile(t, dir, "c.pdf", t4)

	changes, next := Diff(dir, prev)

	assert.Equal(t, map[string]struct{}{"c.pdf": {}}, changes.Added)
	assert.Empty(t, changes.Removed)
	assert.Equal(t, map[string]struct{}{"b.docx": {}}, changes.Modified)
	assert.True(t, changes.Any())
	assert.Len(t, next, 3)
}

func TestDiff_Removal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gone.pdf", time.Now())
	prev := Take(dir)

	require.NoError(t, os.Remove(path))

	changes, next := Diff(dir, prev)
	assert.Equal(t, map[string]struct{}{"gone.pdf": {}}, changes.Removed)
	assert.Empty(t, changes.Added)
	assert.Empty(t, changes.Modified)
	assert.Empty(t, next)
}

func TestDiff_NoChanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stable.docx", time.Now())
	prev := Take(dir)

	changes, _ := Diff(dir, prev)
	assert.False(t, changes.Any())
}

func TestTake_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.pdf", time.Now())
	writeFile(t, dir, "export_patient.xlsx", time.Now())

	snap := Take(dir)
	assert.Len(t, snap, 1)
	assert.Contains(t, snap, "doc.pdf")
}

func TestTake_MissingDirectory(t *testing.T) {
	snap := Take(filepath.Join(t.TempDir(), "absent"))
	assert.Empty(t, snap)
}

func TestSpreadsheetChanged(t *testing.T) {
	dir := t.TempDir()
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	path := writeFile(t, dir, "export_patient.xlsx", t1)

	assert.False(t, SpreadsheetChanged(path, t1))

	t2 := t1.Add(time.Minute)
	require.NoError(t, os.Chtimes(path, t2, t2))
	assert.True(t, SpreadsheetChanged(path, t1))

	// Unreadable file reports no change; the pass surfaces the error.
	assert.False(t, SpreadsheetChanged(filepath.Join(dir, "absent.xlsx"), t1))
}
