package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/psync/internal/adapters/logger"
)

func newTestHandler(t *testing.T) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	return h, buf
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h, _ := newTestHandler(t)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_Attrs(t *testing.T) {
	h, buf := newTestHandler(t)
	lg := slog.New(h)

	lg.Info("tracked", "manifest", "App.csproj")

	assert.Equal(t, "tracked manifest=App.csproj\n", buf.String())
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	h, buf := newTestHandler(t)
	lg := slog.New(h).With("verb", "add")

	lg.Info("done")

	assert.Equal(t, "done verb=add\n", buf.String())
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	h, buf := newTestHandler(t)
	lg := slog.New(h).WithGroup("watch")

	lg.Info("event", "op", "create")

	assert.Equal(t, "event watch.op=create\n", buf.String())
}

func TestPrettyHandler_LevelIcons(t *testing.T) {
	h, buf := newTestHandler(t)
	lg := slog.New(h)

	lg.Warn("careful")
	assert.Equal(t, "! careful\n", buf.String())
	buf.Reset()

	lg.Error("broken")
	assert.Equal(t, "✗ broken\n", buf.String())
}

func TestNewPlainHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	h := logger.NewPlainHandler(buf, nil)
	lg := slog.New(h)

	lg.Info("no color here")

	require.Equal(t, "no color here\n", buf.String())
}
