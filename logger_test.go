package staircase

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestLoggerSilent(t *testing.T) {
	l := Logger()
	test.That(t, l != nil)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		test.That(t, !l.Enabled(context.Background(), level), level)
	}
	test.Error(t, nopHandler{}.Handle(context.Background(), slog.Record{}))
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	defer SetLogger(orig)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Generate(1)
	test.That(t, strings.Contains(buf.String(), "generated tiling"), buf.String())
	test.That(t, strings.Contains(buf.String(), "level=1"), buf.String())

	SetLogger(nil)
	test.That(t, !Logger().Enabled(context.Background(), slog.LevelError))
}
