// FILE: lixenwraith/unilog/target_test.go
package unilog

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestTarget creates a target in a temp directory
func createTestTarget(t *testing.T, mode string, mutate func(*Config), opts ...Option) (*Target, string) {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Directory = tmpDir
	cfg.Mode = mode
	cfg.Colour = "never"
	if mutate != nil {
		mutate(cfg)
	}

	target, err := NewTarget(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = target.Shutdown() })
	return target, tmpDir
}

// day returns 10:00 local time on the given day of January 2024
func day(d int) time.Time {
	return time.Date(2024, 1, d, 10, 0, 0, 0, time.Local)
}

// readLines returns the lines of a logfile
func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

// listDir returns the sorted file names of dir
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// logFiles returns the .log files of dir
func logFiles(t *testing.T, dir string) []string {
	t.Helper()
	var out []string
	for _, name := range listDir(t, dir) {
		if strings.Contains(name, ".log") {
			out = append(out, name)
		}
	}
	return out
}

// syncBuffer is a bytes.Buffer safe for use as an echo writer across goroutines
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewTarget(t *testing.T) {
	target, tmpDir := createTestTarget(t, "single", nil)

	assert.Equal(t, "app", target.Name())
	assert.Equal(t, tmpDir, target.Dir())
	assert.Equal(t, PostfixDay, target.Postfix())
	assert.Equal(t, ModeSingleThreaded, target.Mode())
	assert.False(t, target.ShutdownInitiated())
	assert.False(t, target.ColourEnabled())
	assert.True(t, target.EchoEnabled())
	assert.NotEmpty(t, target.Processors())
}

func TestNewTargetErrors(t *testing.T) {
	_, err := NewTarget(nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Directory = "relative/logs"
	cfg.RelativeTo = ""
	_, err = NewTarget(cfg)
	assert.ErrorIs(t, err, ErrRelativePath)

	cfg = DefaultConfig()
	cfg.Directory = t.TempDir()
	_, err = NewTarget(cfg, WithProcessors(NewFlushProcessor(FrequencyAlways, 0), NewWriteProcessor()))
	assert.ErrorIs(t, err, ErrNoWriter)

	_, err = NewTarget(cfg, WithProcessors(NewCustomProcessor(nil)))
	assert.ErrorIs(t, err, ErrProcessor)
}

func TestLogTextWritesLine(t *testing.T) {
	target, tmpDir := createTestTarget(t, "single", nil)

	ts := time.Date(2024, 3, 5, 14, 15, 16, 7_000_000, time.Local)
	require.True(t, target.LogTextAt(SeverityWarning, "disk almost full", ts))
	require.NoError(t, target.Shutdown())

	lines := readLines(t, filepath.Join(tmpDir, "app_2024-03-05.log"))
	require.Len(t, lines, 1)
	assert.Equal(t, "2024-03-05 14:15:16.007 WRN disk almost full", lines[0])
}

func TestShutdownRejectsEvents(t *testing.T) {
	for _, mode := range []string{"single", "single_thread", "multi", "multi_thread", "multi_process"} {
		t.Run(mode, func(t *testing.T) {
			target, _ := createTestTarget(t, mode, nil)

			assert.True(t, target.LogText(SeverityInfo, "before"))
			require.NoError(t, target.Shutdown())

			assert.True(t, target.ShutdownInitiated())
			assert.True(t, target.ShutdownComplete())
			assert.False(t, target.LogText(SeverityInfo, "after"))
			assert.False(t, target.Info("after"))
			assert.False(t, target.SetEchoColour(true))

			// Second call is a no-op
			assert.NoError(t, target.Shutdown())
		})
	}
}

func TestShutdownProcessesQueuedEvents(t *testing.T) {
	target, tmpDir := createTestTarget(t, "multi_thread", nil)

	target.Pause()
	assert.True(t, target.Paused())
	for i := 0; i < 5; i++ {
		require.True(t, target.LogText(SeverityInfo, "queued"))
	}
	assert.Equal(t, 5, target.QueueLength())

	require.NoError(t, target.Shutdown(2*time.Second))

	files := logFiles(t, tmpDir)
	require.Len(t, files, 1)
	assert.Len(t, readLines(t, filepath.Join(tmpDir, files[0])), 5)
	assert.Equal(t, uint64(5), target.Stats().EventsProcessed)
	assert.Equal(t, uint64(0), target.Stats().EventsDiscarded)
}

func TestCancelDiscardsQueuedEvents(t *testing.T) {
	target, tmpDir := createTestTarget(t, "multi_thread", nil)

	target.Pause()
	for i := 0; i < 5; i++ {
		require.True(t, target.LogText(SeverityInfo, "queued"))
	}

	require.NoError(t, target.Cancel(2*time.Second))

	assert.Empty(t, logFiles(t, tmpDir))
	stats := target.Stats()
	assert.Equal(t, uint64(0), stats.EventsProcessed)
	assert.Equal(t, uint64(5), stats.EventsDiscarded)
	assert.False(t, target.LogText(SeverityInfo, "after"))
}

func TestPauseResume(t *testing.T) {
	target, tmpDir := createTestTarget(t, "single_thread", nil)

	target.Pause()
	for i := 0; i < 3; i++ {
		require.True(t, target.LogTextAt(SeverityInfo, "held", day(1)))
	}
	// Nothing is processed while paused
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, uint64(0), target.Stats().EventsProcessed)
	releasesBefore := target.Stats().SemaphoreReleases

	target.Resume()
	assert.False(t, target.Paused())
	assert.Equal(t, releasesBefore+3, target.Stats().SemaphoreReleases)

	require.Eventually(t, func() bool {
		return target.Stats().EventsProcessed == 3
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, target.Shutdown())
	assert.Len(t, readLines(t, filepath.Join(tmpDir, "app_2024-01-01.log")), 3)
}

func TestQueueOrderPreserved(t *testing.T) {
	target, tmpDir := createTestTarget(t, "single_thread", nil)

	const n = 200
	for i := 0; i < n; i++ {
		require.True(t, target.Logf(SeverityInfo, "seq=%03d", i))
	}
	require.NoError(t, target.Shutdown())

	files := logFiles(t, tmpDir)
	require.Len(t, files, 1)
	lines := readLines(t, filepath.Join(tmpDir, files[0]))
	require.Len(t, lines, n)
	for i, line := range lines {
		assert.True(t, strings.HasSuffix(line, fmt.Sprintf(" INF seq=%03d", i)), "line %d out of order: %s", i, line)
	}
}

func TestConcurrentLogging(t *testing.T) {
	for _, mode := range []string{"multi", "multi_thread", "multi_process"} {
		t.Run(mode, func(t *testing.T) {
			target, tmpDir := createTestTarget(t, mode, nil)

			const goroutines, perGoroutine = 10, 100
			var wg sync.WaitGroup
			for g := 0; g < goroutines; g++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					for i := 0; i < perGoroutine; i++ {
						target.Info("goroutine", id, "message", i)
					}
				}(g)
			}
			wg.Wait()
			require.NoError(t, target.Shutdown(5*time.Second))

			files := logFiles(t, tmpDir)
			require.Len(t, files, 1)
			lines := readLines(t, filepath.Join(tmpDir, files[0]))
			assert.Len(t, lines, goroutines*perGoroutine)
			for _, line := range lines {
				assert.Contains(t, line, " INF goroutine ")
			}
		})
	}
}

func TestMultiProcessLockFile(t *testing.T) {
	target, tmpDir := createTestTarget(t, "multi_process", nil)

	require.True(t, target.LogTextAt(SeverityInfo, "locked write", day(2)))
	require.NoError(t, target.Shutdown())

	assert.FileExists(t, filepath.Join(tmpDir, "app.lock"))
	assert.Equal(t, []string{"locked write"}, trimPrefixes(readLines(t, filepath.Join(tmpDir, "app_2024-01-02.log"))))
}

// trimPrefixes strips the timestamp and 3-char severity from each line
func trimPrefixes(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		// "2006-01-02 15:04:05.000 SEV " is 28 bytes
		if len(line) >= 28 {
			out[i] = line[28:]
		}
	}
	return out
}

func TestCurrentFileWhileLogging(t *testing.T) {
	target, tmpDir := createTestTarget(t, "multi_thread", nil)
	assert.Empty(t, target.CurrentFile())

	stop := make(chan struct{})
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			select {
			case <-stop:
				return
			default:
				if name := target.CurrentFile(); name != "" {
					assert.True(t, strings.HasPrefix(filepath.Base(name), "app_2024-01-0"), name)
				}
			}
		}
	}()

	for d := 1; d <= 3; d++ {
		for i := 0; i < 50; i++ {
			require.True(t, target.LogTextAt(SeverityInfo, dayText(d), day(d)))
		}
	}
	require.NoError(t, target.Shutdown())
	close(stop)
	<-readerDone

	assert.Equal(t, filepath.Join(tmpDir, "app_2024-01-03.log"), target.CurrentFile())
}

func TestTargetWriter(t *testing.T) {
	target, tmpDir := createTestTarget(t, "single", nil)

	n, err := target.Write([]byte("from io.Writer\n"))
	require.NoError(t, err)
	assert.Equal(t, 15, n)
	require.NoError(t, target.Shutdown())

	files := logFiles(t, tmpDir)
	require.Len(t, files, 1)
	lines := readLines(t, filepath.Join(tmpDir, files[0]))
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], " MSG from io.Writer"))

	_, err = target.Write([]byte("late"))
	assert.Error(t, err)
}
