package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phirapack/internal/config"
	"phirapack/internal/logging"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "console"
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "phirapack.log")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("pack built", logging.String("archive", "Test_Pack_ResourcePack.zip"))

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "pack built") {
		t.Fatalf("expected message in log file, got %q", content)
	}
	if !strings.Contains(string(content), "archive=Test_Pack_ResourcePack.zip") {
		t.Fatalf("expected archive attr in log file, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")

	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")

	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message with caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerRendersSubject(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "subject.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithBuildID(context.Background(), "0123456789abcdef")
	ctx = logging.WithStage(ctx, "archive")
	logging.WithContext(ctx, logging.NewComponentLogger(logger, "builder")).Info("stage completed")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	want := "builder · Build 01234567 (archive): stage completed"
	if !strings.Contains(string(content), want) {
		t.Fatalf("expected %q in %q", want, content)
	}
}

func TestJSONLoggerEmitsContextFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithBuildID(context.Background(), "build-1")
	ctx = logging.WithStage(ctx, "manifest")
	logging.WithContext(ctx, logger).Info("contextual log", logging.String("k", "v"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, content)
	}
	for key, want := range map[string]string{
		logging.FieldBuildID: "build-1",
		logging.FieldStage:   "manifest",
		"k":                  "v",
		"level":              "info",
		"msg":                "contextual log",
	} {
		if got, _ := record[key].(string); got != want {
			t.Fatalf("field %s = %q, want %q", key, got, want)
		}
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("expected ts field")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestAutoFormatUsesJSONForFiles(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "auto.log")
	logger, err := logging.New(logging.Options{Format: "auto", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("auto format")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(content)), "{") {
		t.Fatalf("expected json output for non-terminal file, got %q", content)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "role skipped", "role_skipped", logging.String("role", "tap"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, fragment := range []string{`"event_type":"role_skipped"`, `"error_hint"`, `"impact"`} {
		if !strings.Contains(string(content), fragment) {
			t.Fatalf("expected %s in %q", fragment, content)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected nop logger to be disabled")
	}
}

func TestFormatSubject(t *testing.T) {
	tests := []struct {
		buildID, stage, want string
	}{
		{"", "", ""},
		{"abc", "", "Build abc"},
		{"", "manifest", "manifest"},
		{"0123456789", "archive", "Build 01234567 (archive)"},
	}
	for _, tt := range tests {
		if got := logging.FormatSubject(tt.buildID, tt.stage); got != tt.want {
			t.Errorf("FormatSubject(%q, %q) = %q, want %q", tt.buildID, tt.stage, got, tt.want)
		}
	}
}
