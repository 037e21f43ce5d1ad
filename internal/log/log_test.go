package log

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormat_FieldsAndOrphanKey(t *testing.T) {
	ts := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)

	line := format(ts, LevelError, CatClient, "request failed", []any{"status", 502, "orphan"})

	require.Equal(t, "2025-12-06T10:45:00 [ERROR] [client] request failed status=502 orphan=<missing>\n", line)
}

func TestWrite_RespectsMinLevelAndEnabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Reset()

	SetMinLevel(LevelWarn)
	Info(CatOrch, "suppressed")
	Warn(CatOrch, "kept", "seq", 3)
	require.NotContains(t, buf.String(), "suppressed")
	require.Contains(t, buf.String(), "[WARN] [orch] kept seq=3")

	SetEnabled(false)
	Error(CatOrch, "muted")
	require.NotContains(t, buf.String(), "muted")
}

func TestErrorErr_AppendsError(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Reset()

	ErrorErr(CatPrefs, "save failed", errors.New("disk full"), "key", "theme")
	ErrorErr(CatPrefs, "nil error", nil)

	out := buf.String()
	require.Contains(t, out, "save failed key=theme error=disk full")
	require.Contains(t, out, "nil error error=<nil>")
}

func TestNoLogger_IsNoop(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Debug(CatUI, "nothing installed")
		SetEnabled(true)
		SetMinLevel(LevelDebug)
	})
	require.Nil(t, NewListener(context.Background()))
}

func TestNewListener_ReceivesLines(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatRender, "applied", "seq", 1)

	select {
	case ev := <-listener.Channel():
		require.True(t, strings.Contains(ev.Payload, "[render] applied seq=1"))
	case <-time.After(time.Second):
		require.Fail(t, "timeout waiting for log event")
	}
}

func TestInit_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	cleanup, err := Init(path)
	require.NoError(t, err)
	Info(CatConfig, "loaded", "path", "x.yaml")
	cleanup()
	Reset()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [config] loaded path=x.yaml")
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv(EnvDebug, "")
	require.False(t, DebugEnabled())
	t.Setenv(EnvDebug, "1")
	require.True(t, DebugEnabled())
}
