// FILE: lixenwraith/unilog/dispatch_test.go
package unilog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a custom processor handler that remembers what it saw
type recorder struct {
	result bool
	texts  []string
}

func (r *recorder) HandleEvent(evt *Event) bool {
	r.texts = append(r.texts, evt.Text())
	return r.result
}

func TestDispatchContinuation(t *testing.T) {
	testCases := []struct {
		name       string
		firstOK    bool
		firstOpts  ProcessorOption
		expectNext bool
	}{
		{name: "success continues", firstOK: true, expectNext: true},
		{name: "failure stops", firstOK: false, expectNext: false},
		{name: "force next overrides failure", firstOK: false, firstOpts: OptionForceNext, expectNext: true},
		{name: "disabled is skipped", firstOK: false, firstOpts: OptionDisabled, expectNext: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			first := &recorder{result: tc.firstOK}
			second := &recorder{result: true}
			target, _ := createTestTarget(t, "single", nil, WithProcessors(
				NewCustomProcessor(first).WithOptions(tc.firstOpts),
				NewCustomProcessor(second),
			))

			require.True(t, target.LogTextAt(SeverityInfo, "event", day(1)))

			if tc.firstOpts&OptionDisabled != 0 {
				assert.Empty(t, first.texts)
			} else {
				assert.Equal(t, []string{"event"}, first.texts)
			}
			if tc.expectNext {
				assert.Equal(t, []string{"event"}, second.texts)
			} else {
				assert.Empty(t, second.texts)
			}
		})
	}
}

func TestDispatchThresholdNotReachedContinues(t *testing.T) {
	first := &recorder{result: false}
	second := &recorder{result: true}
	p := NewCustomProcessor(first)
	p.Frequency = FrequencyEveryNEvents
	p.Threshold = 2

	target, _ := createTestTarget(t, "single", nil, WithProcessors(p, NewCustomProcessor(second)))

	target.LogTextAt(SeverityInfo, "one", day(1))
	target.LogTextAt(SeverityInfo, "two", day(1))
	target.LogTextAt(SeverityInfo, "three", day(1))

	// first runs only on "two" and stops the pipeline there
	assert.Equal(t, []string{"two"}, first.texts)
	assert.Equal(t, []string{"one", "three"}, second.texts)
}

func TestDispatchRunOnStartup(t *testing.T) {
	first := &recorder{result: false}
	second := &recorder{result: true}
	p := NewCustomProcessor(first)
	p.Frequency = FrequencyEveryNEvents
	p.Threshold = 100

	target, _ := createTestTarget(t, "single", func(cfg *Config) {
		cfg.RunOnStartup = true
	}, WithProcessors(p, NewCustomProcessor(second)))

	target.LogTextAt(SeverityInfo, "first", day(1))
	target.LogTextAt(SeverityInfo, "second", day(1))

	// The first event runs every processor and ignores failures
	assert.Equal(t, []string{"first"}, first.texts)
	assert.Equal(t, []string{"first", "second"}, second.texts)
}

func TestRunOnceAtStartupOption(t *testing.T) {
	rec := &recorder{result: true}
	p := NewCustomProcessor(rec).WithOptions(OptionRunOnceAtStartup)
	p.Frequency = FrequencyEveryNEvents
	p.Threshold = 3

	target, _ := createTestTarget(t, "single", nil, WithProcessors(p))
	for i := 0; i < 4; i++ {
		target.LogTextAt(SeverityInfo, "e", day(1))
	}
	// Startup run, then the counter reaches 3 on the third event
	assert.Len(t, rec.texts, 2)
}

func TestRedirectAndFork(t *testing.T) {
	otherRec := &recorder{result: true}
	other, _ := createTestTarget(t, "single", nil, WithProcessors(NewCustomProcessor(otherRec)))

	t.Run("redirect stops the source pipeline", func(t *testing.T) {
		after := &recorder{result: true}
		src, _ := createTestTarget(t, "single", nil, WithProcessors(
			NewRedirectProcessor(other),
			NewCustomProcessor(after),
		))
		src.LogTextAt(SeverityInfo, "redirected", day(1))
		assert.Contains(t, otherRec.texts, "redirected")
		assert.Empty(t, after.texts)
	})

	t.Run("fork continues the source pipeline", func(t *testing.T) {
		after := &recorder{result: true}
		src, _ := createTestTarget(t, "single", nil, WithProcessors(
			NewForkProcessor(other),
			NewCustomProcessor(after),
		))
		src.LogTextAt(SeverityInfo, "forked", day(1))
		assert.Contains(t, otherRec.texts, "forked")
		assert.Equal(t, []string{"forked"}, after.texts)
	})
}

func TestEchoOnlyEvents(t *testing.T) {
	before := &recorder{result: true}
	after := &recorder{result: true}
	echo := &syncBuffer{}
	target, tmpDir := createTestTarget(t, "single", nil,
		WithEchoWriter(echo),
		WithProcessors(
			NewCustomProcessor(before),
			NewEchoProcessor(),
			NewCustomProcessor(after),
			NewWriteProcessor(),
		))

	require.True(t, target.EchoText(SeverityNotice, "console only"))
	require.NoError(t, target.Shutdown())

	assert.Contains(t, echo.String(), "NOT console only")
	assert.Empty(t, before.texts)
	assert.Empty(t, after.texts)
	assert.Empty(t, logFiles(t, tmpDir))
}

func TestEchoStripsEscapeSequences(t *testing.T) {
	echo := &syncBuffer{}
	target, tmpDir := createTestTarget(t, "single", nil,
		WithEchoWriter(echo),
		WithProcessors(NewEchoProcessor(), NewWriteProcessor()))

	require.True(t, target.LogTextAt(SeverityInfo, "\x1b[2Jcleared", day(1)))
	require.NoError(t, target.Shutdown())

	assert.NotContains(t, echo.String(), "\x1b")
	assert.Contains(t, echo.String(), "INF [2Jcleared")
	lines := readLines(t, filepath.Join(tmpDir, "app_2024-01-01.log"))
	assert.Equal(t, []string{"\x1b[2Jcleared"}, trimPrefixes(lines))
}

func TestErrorCallbackActions(t *testing.T) {
	blockPath := func(dir string) {
		// A directory where the logfile should be makes the open fail
		require.NoError(t, os.Mkdir(filepath.Join(dir, "app_2024-01-01.log"), 0755))
	}

	t.Run("ignore continues", func(t *testing.T) {
		var seen []ErrorKind
		after := &recorder{result: true}
		target, dir := createTestTarget(t, "single", nil,
			WithErrorCallback(func(err *TargetError, p *Processor, evt *Event) ErrorAction {
				seen = append(seen, err.Kind)
				return ErrorActionIgnore
			}),
			WithProcessors(NewWriteProcessor(), NewCustomProcessor(after)))
		blockPath(dir)

		target.LogTextAt(SeverityInfo, "x", day(1))
		assert.Equal(t, []ErrorKind{ErrorOpen}, seen)
		assert.Equal(t, []string{"x"}, after.texts)
		require.NotNil(t, target.LastError())
		assert.Equal(t, ErrorOpen, target.LastError().Kind)
		assert.Equal(t, uint64(1), target.Stats().Errors)
	})

	t.Run("next event skips remaining processors", func(t *testing.T) {
		after := &recorder{result: true}
		target, dir := createTestTarget(t, "single", nil,
			WithErrorCallback(func(err *TargetError, p *Processor, evt *Event) ErrorAction {
				return ErrorActionNextEvent
			}),
			WithProcessors(NewWriteProcessor(), NewCustomProcessor(after)))
		blockPath(dir)

		target.LogTextAt(SeverityInfo, "x", day(1))
		assert.Empty(t, after.texts)
	})

	t.Run("shutdown stops accepting events", func(t *testing.T) {
		target, dir := createTestTarget(t, "single", nil,
			WithErrorCallback(func(err *TargetError, p *Processor, evt *Event) ErrorAction {
				return ErrorActionShutdown
			}),
			WithProcessors(NewWriteProcessor()))
		blockPath(dir)

		assert.True(t, target.LogTextAt(SeverityInfo, "x", day(1)))
		assert.True(t, target.ShutdownInitiated())
		assert.False(t, target.LogTextAt(SeverityInfo, "y", day(1)))
	})

	t.Run("shutdown from the logging goroutine", func(t *testing.T) {
		target, dir := createTestTarget(t, "multi_thread", nil,
			WithErrorCallback(func(err *TargetError, p *Processor, evt *Event) ErrorAction {
				return ErrorActionShutdown
			}),
			WithProcessors(NewWriteProcessor()))
		blockPath(dir)

		assert.True(t, target.LogTextAt(SeverityInfo, "x", day(1)))
		require.Eventually(t, target.ShutdownInitiated, time.Second, 5*time.Millisecond)
		assert.NoError(t, target.Shutdown())
		assert.True(t, target.ShutdownComplete())
	})

	t.Run("cancel discards queued events", func(t *testing.T) {
		after := &recorder{result: true}
		target, dir := createTestTarget(t, "multi_thread", nil,
			WithErrorCallback(func(err *TargetError, p *Processor, evt *Event) ErrorAction {
				return ErrorActionCancel
			}),
			WithProcessors(NewWriteProcessor(), NewCustomProcessor(after)))
		blockPath(dir)

		// Queue everything behind the failing write before the goroutine sees any of it
		target.Pause()
		require.True(t, target.LogTextAt(SeverityInfo, "x", day(1)))
		for _, text := range []string{"a", "b", "c"} {
			require.True(t, target.LogTextAt(SeverityInfo, text, day(1)))
		}
		target.Resume()

		require.Eventually(t, target.ShutdownInitiated, time.Second, 5*time.Millisecond)
		assert.NoError(t, target.Shutdown())
		assert.True(t, target.ShutdownComplete())

		assert.Equal(t, []string{"x"}, after.texts)
		stats := target.Stats()
		assert.Equal(t, uint64(1), stats.EventsProcessed)
		assert.Equal(t, uint64(3), stats.EventsDiscarded)
		assert.False(t, target.LogTextAt(SeverityInfo, "late", day(1)))
	})

	t.Run("next processor stops the rotator only", func(t *testing.T) {
		testCases := []struct {
			name       string
			action     ErrorAction
			trashCalls int
		}{
			{name: "next processor", action: ErrorActionNextProcessor, trashCalls: 1},
			{name: "ignore", action: ErrorActionIgnore, trashCalls: 4},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				calls := 0
				failingTrash := func(path string) error {
					calls++
					return os.ErrPermission
				}
				var seen []ErrorKind
				var texts []string
				target, dir := createTestTarget(t, "single", nil,
					WithTrash(failingTrash),
					WithErrorCallback(func(err *TargetError, p *Processor, evt *Event) ErrorAction {
						seen = append(seen, err.Kind)
						return tc.action
					}),
					WithProcessors(
						NewUpdateFilenameProcessor(),
						NewRotateProcessor(RotateTrash, 1, 100),
						NewCustomProcessor(HandlerFunc(func(evt *Event) bool {
							if !evt.Internal() {
								texts = append(texts, evt.Text())
							}
							return true
						})),
						NewWriteProcessor(),
					))

				old := []string{"app_2023-12-28.log", "app_2023-12-29.log", "app_2023-12-30.log", "app_2023-12-31.log"}
				for _, name := range old {
					require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("old\n"), 0644))
				}

				require.True(t, target.LogTextAt(SeverityInfo, "x", day(1)))
				require.NoError(t, target.Shutdown())

				assert.Equal(t, tc.trashCalls, calls)
				assert.Len(t, seen, tc.trashCalls)
				for _, kind := range seen {
					assert.Equal(t, ErrorTrash, kind)
				}
				assert.Equal(t, []string{"x"}, texts)
				for _, name := range old {
					assert.FileExists(t, filepath.Join(dir, name))
				}
			})
		}
	})
}

func TestInternalEventsAreMarked(t *testing.T) {
	var internal []string
	target, dir := createTestTarget(t, "single", func(cfg *Config) {
		cfg.Postfix = "day"
	}, WithProcessors(
		NewUpdateFilenameProcessor(),
		NewRotateProcessor(RotateRename, 1, 10),
		NewCustomProcessor(HandlerFunc(func(evt *Event) bool {
			if evt.Internal() {
				internal = append(internal, evt.Text())
			}
			return true
		})),
		NewWriteProcessor(),
	))

	require.True(t, target.LogTextAt(SeverityInfo, "one", day(1)))
	// Occupy the rename destination
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app_2024-01-01_20240102T100000.log"), nil, 0644))
	require.True(t, target.LogTextAt(SeverityInfo, "two", day(2)))

	require.Len(t, internal, 1)
	assert.True(t, strings.HasPrefix(internal[0], "rename of 'app_2024-01-01.log' failed"))
}
