package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"phirapack/internal/history"
	"phirapack/internal/testsupport"
)

func TestRecordAndGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	started := time.Date(2026, 5, 1, 12, 0, 0, 123000000, time.UTC)
	entry := history.Entry{
		BuildID:     "b-1",
		PackName:    "Test Pack",
		OK:          true,
		FinalState:  "cleaned_up",
		ArchivePath: "/tmp/Test_Pack_ResourcePack.zip",
		Message:     "Pack created successfully",
		Skipped:     2,
		StartedAt:   started,
		Duration:    1500 * time.Millisecond,
	}
	if err := store.Record(ctx, entry); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := store.Get(ctx, "b-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry")
	}
	if !got.StartedAt.Equal(started) {
		t.Fatalf("started_at = %v, want %v", got.StartedAt, started)
	}
	got.StartedAt = started
	if *got != entry {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", *got, entry)
	}

	missing, err := store.Get(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("expected nil entry for unknown id, got %+v err=%v", missing, err)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 5, 0, time.UTC)
	for i, offset := range []time.Duration{0, 500 * time.Millisecond, time.Hour} {
		err := store.Record(ctx, history.Entry{
			BuildID:    string(rune('a' + i)),
			PackName:   "p",
			FinalState: "failed",
			ErrorKind:  "validation",
			StartedAt:  base.Add(offset),
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 || entries[0].BuildID != "c" || entries[1].BuildID != "b" {
		t.Fatalf("unexpected order %+v", entries)
	}
	if entries[0].OK || entries[0].ErrorKind != "validation" {
		t.Fatalf("unexpected entry %+v", entries[0])
	}

	all, err := store.Recent(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all entries, got %d err=%v", len(all), err)
	}

	removed, err := store.Prune(ctx, base.Add(time.Minute))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 pruned, got %d", removed)
	}
}

func TestRecordRequiresBuildID(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	if err := store.Record(context.Background(), history.Entry{PackName: "x"}); err == nil {
		t.Fatal("expected error for empty build id")
	}
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	first, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Record(context.Background(), history.Entry{BuildID: "x", PackName: "x", FinalState: "archived", StartedAt: time.Now()}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	entry, err := second.Get(context.Background(), "x")
	if err != nil || entry == nil {
		t.Fatalf("expected persisted entry, got %+v err=%v", entry, err)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := history.Open(" "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestOpenDetectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	if _, err := history.Open(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
