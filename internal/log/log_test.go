package log

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestLoggingBeforeInitIsNoop(t *testing.T) {
	// defaultLogger may be nil at this point; these must not panic
	Debug(CatUI, "ignored")
	Info(CatChat, "ignored")
	ErrorErr(CatDB, "ignored", errors.New("x"))
}

// The logger is a process-wide singleton behind sync.Once, so everything
// that needs an initialized logger runs in this one test.
func TestLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	defer cleanup()

	Info(CatChat, "message sent", "id", "m1")
	ErrorErr(CatDB, "save failed", errors.New("disk full"), "op", "send-message")
	Warn(CatWatcher, "odd fields", "dangling")

	SetMinLevel(LevelError)
	Debug(CatUI, "filtered out")
	SetMinLevel(LevelDebug)

	SetEnabled(false)
	Info(CatChat, "disabled")
	SetEnabled(true)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "[INFO] [chat] message sent id=m1")
	assert.Contains(t, out, "[ERROR] [db] save failed op=send-message error=disk full")
	assert.Contains(t, out, "dangling=<missing>")
	assert.NotContains(t, out, "filtered out")
	assert.NotContains(t, out, "disabled")
}
