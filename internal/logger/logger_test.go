package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker"} {
		l, err := NewLogger(env, Options{})
		if err != nil {
			t.Fatalf("env %q: unexpected error: %v", env, err)
		}
		_ = l.Sync()
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging", Options{}); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNewLogger_Level(t *testing.T) {
	l, err := NewLogger("prod", Options{Level: "debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level enabled")
	}

	if _, err := NewLogger("prod", Options{Level: "verbose"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filmrec.log")
	l, err := NewLogger("local", Options{Output: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Info("catalog loaded")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "catalog loaded") {
		t.Errorf("log file missing entry: %q", data)
	}
	if strings.Contains(string(data), "\x1b[") {
		t.Error("expected no color codes in file output")
	}
}

func TestFromContext(t *testing.T) {
	if l := FromContext(context.Background()); l == nil {
		t.Fatal("expected nop logger")
	}

	want := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), want)
	if got := FromContext(ctx); got != want {
		t.Error("expected stored logger")
	}
}

func TestWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))

	if With(ctx) != ctx {
		t.Error("expected ctx unchanged without fields")
	}

	FromContext(With(ctx, zap.Int("ref_id", 862))).Debug("ranked")
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["ref_id"]; got != int64(862) {
		t.Errorf("ref_id = %v", got)
	}
}
