package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLogger(buf *bytes.Buffer) writerLogger {
	l := NewWriterLogger(buf).(writerLogger)
	l.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return l
}

func TestWriterLoggerFormatsObject(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)

	l.Info("agent ready", map[string]any{"model": "gpt-3.5-turbo"})
	l.Warn("plain", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `2024-05-01T12:00:00Z INFO  agent ready obj={"model":"gpt-3.5-turbo"}`, lines[0])
	assert.Equal(t, `2024-05-01T12:00:00Z WARN  plain`, lines[1])
}

func TestWithMergesFields(t *testing.T) {
	var buf bytes.Buffer
	l := With(fixedLogger(&buf), map[string]any{"session_id": "abc"})

	l.Debug("dispatch", map[string]any{"turns": 2})
	l.Error("bare", nil)

	out := buf.String()
	assert.Contains(t, out, `dispatch obj={"session_id":"abc","turns":2}`)
	assert.Contains(t, out, `bare obj={"session_id":"abc"}`)
}

func TestWithLeavesNopLoggerAlone(t *testing.T) {
	assert.Equal(t, NopLogger{}, With(NopLogger{}, map[string]any{"a": 1}))
}

func TestDebugRespectsEnabledFlag(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf)

	Debug(false, l, "hidden", nil)
	Debug(true, nil, "nil logger", nil)
	assert.Empty(t, buf.String())

	Debug(true, l, "shown", nil)
	assert.Contains(t, buf.String(), "DEBUG shown")
}
