package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phirapack/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()
	if result := CheckFreeSpace("space", dir, 1); !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
	result := CheckFreeSpace("space", dir, ^uint64(0))
	if result.Passed {
		t.Fatal("expected failure for impossible requirement")
	}
	if !strings.Contains(result.Detail, "need 16 EiB") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
	if result := CheckFreeSpace("space", filepath.Join(dir, "missing"), 1); result.Passed {
		t.Fatal("expected failure for missing path")
	}
}

func TestRunAllSkipsHistoryWhenDisabled(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = base
	cfg.Paths.OutputDir = base
	cfg.Paths.HistoryDB = filepath.Join(base, "missing", "history.db")

	results := RunAll(&cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if results[3].Passed {
		t.Fatal("expected history directory check to fail")
	}

	cfg.History.Enabled = false
	results = RunAll(&cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Fatalf("%s failed: %s", r.Name, r.Detail)
		}
	}
	if RunAll(nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
