// FILE: lixenwraith/unilog/default_test.go
package unilog

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTarget(t *testing.T) {
	t.Cleanup(func() { _ = Shutdown() })

	assert.Nil(t, Default())
	assert.False(t, Info("before init"))

	tmpDir := t.TempDir()
	require.NoError(t, InitWithDefaults("directory="+tmpDir, "mode=single", "postfix=none", "colour=never"))
	require.NotNil(t, Default())

	assert.True(t, Debug("debug", 1))
	assert.True(t, Info("info", true))
	assert.True(t, Warn("warn"))
	assert.True(t, Error("error"))
	assert.True(t, LogText(SeverityNotice, "notice"))
	assert.True(t, Logf(SeverityMessage, "%d items", 4))
	assert.True(t, HexDump(SeverityDebug, []byte{0x01}, "blob"))

	require.NoError(t, Shutdown())
	assert.Nil(t, Default())
	assert.False(t, Warn("after shutdown"))

	lines := trimPrefixes(readLines(t, filepath.Join(tmpDir, "app.log")))
	require.GreaterOrEqual(t, len(lines), 8)
	assert.Equal(t, []string{"debug 1", "info true", "warn", "error", "notice", "4 items", "blob"}, lines[:7])
	assert.True(t, strings.HasPrefix(readLines(t, filepath.Join(tmpDir, "app.log"))[7], "00000000  01"))
}

func TestInitReplacesDefault(t *testing.T) {
	t.Cleanup(func() { _ = Shutdown() })

	first := t.TempDir()
	second := t.TempDir()

	require.NoError(t, InitWithDefaults("directory="+first, "mode=multi", "postfix=none"))
	old := Default()
	require.NoError(t, InitWithDefaults("directory="+second, "mode=multi", "postfix=none"))

	assert.NotSame(t, old, Default())
	assert.True(t, old.ShutdownComplete())
	assert.Equal(t, second, Default().Dir())
}

func TestInitWithDefaultsRejectsBadOverride(t *testing.T) {
	t.Cleanup(func() { _ = Shutdown() })

	err := InitWithDefaults("postfix=fortnight")
	require.Error(t, err)
	assert.Nil(t, Default())
}
