package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cockroachdb/errors"
)

func TestToLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ToLogLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ToLogLevel("info"))
	assert.Equal(t, slog.LevelWarn, ToLogLevel("warn"))
	assert.Equal(t, slog.LevelError, ToLogLevel("error"))
	assert.Panics(t, func() { ToLogLevel("verbose") })
}

func TestSetupLoggerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerTo("info", &buf)

	slog.Info("staging dataset", RowsKey, 100, ColsKey, 5, LayoutKey, "RowMajor")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "staging dataset", entry["msg"])
	assert.Equal(t, float64(100), entry[RowsKey])
	assert.Equal(t, "RowMajor", entry[LayoutKey])
}

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerTo("error", &buf)

	err := errors.New("buffer length mismatch")
	slog.Error("staging failed", ErrAttr(err))

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Contains(t, entry, StacktraceAttrKey)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerTo("warn", &buf)

	slog.Info("below threshold")
	assert.Empty(t, buf.String())

	slog.Warn("at threshold")
	assert.NotEmpty(t, buf.String())
}
