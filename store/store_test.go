package store

import (
	"context"
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/ipfan/result"
)

func sampleRecord() Record {
	addr := netip.MustParseAddr("1.2.3.4")
	return Record{
		RunID:     "run-1",
		Timestamp: time.Unix(0, 0).UTC(),
		Target:    &addr,
		Results:   []result.Result{result.Ok("ip-api.com", addr)},
	}
}

func TestJSONLStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.jsonl")
	s := NewJSONL(path)
	if err := s.Save(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	records, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].RunID != "run-1" {
		t.Fatalf("RunID = %q, want run-1", records[0].RunID)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	if err := s.Save(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	records, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record")
	}
}

func TestJSONLStoreContextCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.jsonl")
	s := NewJSONL(path)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Save(ctx, sampleRecord())
	if err == nil {
		t.Fatalf("expected context error")
	}
	_, err = s.List(ctx)
	if err == nil {
		t.Fatalf("expected context error on list")
	}
	if _, err := os.Stat(path); err != nil && !os.IsNotExist(err) {
		t.Fatalf("unexpected stat error: %v", err)
	}
}

func TestFindRun(t *testing.T) {
	records := []Record{sampleRecord()}
	if _, err := FindRun(records, "missing"); err != ErrNotFound {
		t.Fatalf("FindRun() error = %v, want ErrNotFound", err)
	}
	got, err := FindRun(records, "run-1")
	if err != nil {
		t.Fatalf("FindRun() error = %v", err)
	}
	if got.RunID != "run-1" {
		t.Fatalf("FindRun() RunID = %q", got.RunID)
	}
}
