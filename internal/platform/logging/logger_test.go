package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestLogger_FieldsAndNamed(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).Named("autobid").With("draft_id", int64(1))

	logger.WarnContext(context.Background(), "auto bid failed", "team_id", int64(7), "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.LoggerName != "autobid" {
		t.Fatalf("unexpected logger name %q", entry.LoggerName)
	}
	fields := entry.ContextMap()
	if fields["team_id"] != int64(7) {
		t.Fatalf("missing team_id field: %+v", fields)
	}
	if fields["draft_id"] != int64(1) {
		t.Fatalf("missing draft_id field: %+v", fields)
	}
	if fields["error"] != "boom" {
		t.Fatalf("missing error field: %+v", fields)
	}
}

func TestLogger_NilIsSafe(t *testing.T) {
	var l *Logger
	l.Info("ignored")
	if err := l.Sync(); err != nil {
		t.Fatalf("nil Sync: %v", err)
	}
}
