// FILE: lixenwraith/unilog/compress_test.go
package unilog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.log.1")
	content := strings.Repeat("2024-01-01 10:00:00.000 INF repeated line\n", 200)
	require.NoError(t, os.WriteFile(src, []byte(content), 0644))
	mtime := time.Date(2024, 1, 1, 23, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	target, _ := createTestTarget(t, "single", nil)
	size, err := target.compressFile(src)
	require.NoError(t, err)
	assert.Less(t, size, int64(len(content)))
	assert.NoFileExists(t, src)
	assert.NoFileExists(t, src+zstdSuffix+".tmp")

	info, err := os.Stat(src + zstdSuffix)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "modification time is carried over")

	var buf bytes.Buffer
	require.NoError(t, ReadCompressed(src+zstdSuffix, &buf))
	assert.Equal(t, content, buf.String())
}

func TestCompressFileRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.log.1")
	require.NoError(t, os.WriteFile(src, []byte("new\n"), 0644))
	require.NoError(t, os.WriteFile(src+zstdSuffix, []byte("old"), 0644))

	target, _ := createTestTarget(t, "single", nil)
	_, err := target.compressFile(src)
	assert.Error(t, err)
	assert.FileExists(t, src)
}

func TestCompressFileKeepsSourceWhenRemoveFails(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.log.1")
	require.NoError(t, os.WriteFile(src, []byte("old\n"), 0644))

	removeFile = func(string) error { return os.ErrPermission }
	t.Cleanup(func() { removeFile = os.Remove })

	target, _ := createTestTarget(t, "single", nil)
	_, err := target.compressFile(src)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.FileExists(t, src)
	assert.NoFileExists(t, src+zstdSuffix)
	assert.NoFileExists(t, src+zstdSuffix+".tmp")

	// A later run is not blocked by leftovers
	removeFile = os.Remove
	_, err = target.compressFile(src)
	require.NoError(t, err)
	assert.NoFileExists(t, src)
	assert.FileExists(t, src+zstdSuffix)
}

func TestMoveToTrash(t *testing.T) {
	trashHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", trashHome)

	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		path := filepath.Join(dir, "app.log.3")
		require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))
		require.NoError(t, moveToTrash(path))
		assert.NoFileExists(t, path)
	}

	// The second file with the same name gets a collision suffix
	assert.FileExists(t, filepath.Join(trashHome, "Trash", "files", "app.log.3"))
	assert.FileExists(t, filepath.Join(trashHome, "Trash", "files", "app.log.3.1"))

	info, err := os.ReadFile(filepath.Join(trashHome, "Trash", "info", "app.log.3.trashinfo"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "[Trash Info]\nPath="+filepath.Join(dir, "app.log.3")+"\n")
	assert.Contains(t, string(info), "DeletionDate=")
}

func TestSetThreadPrioritySynchronous(t *testing.T) {
	target, _ := createTestTarget(t, "single", nil)

	require.True(t, target.SetThreadPriority(PriorityBelowNormal))
	assert.Equal(t, PriorityBelowNormal, target.priority)
	assert.Equal(t, 5, niceValue(PriorityBelowNormal))
	assert.Equal(t, 0, niceValue(PriorityNormal))
}
