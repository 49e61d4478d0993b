package exporter

import (
	"bytes"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/example/ipfan/result"
	"github.com/example/ipfan/store"
)

func sampleRecord() store.Record {
	addr := netip.MustParseAddr("1.1.1.1")
	return store.Record{
		RunID:     "run-1",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Target:    &addr,
		Results:   []result.Result{result.Ok("ip-api.com", addr)},
	}
}

func TestToJSONL(t *testing.T) {
	var buf bytes.Buffer
	if err := ToJSONL([]store.Record{sampleRecord()}, &buf); err != nil {
		t.Fatalf("ToJSONL error = %v", err)
	}
	if !strings.Contains(buf.String(), "ip-api.com") {
		t.Fatalf("expected provider name in output")
	}
}

func TestToCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := ToCSV([]store.Record{sampleRecord()}, &buf); err != nil {
		t.Fatalf("ToCSV error = %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "ip-api.com") {
		t.Fatalf("expected provider name in csv")
	}
	if !strings.Contains(output, "run_id") {
		t.Fatalf("expected header")
	}
}

func TestToCSVWritesErrorForFailedResult(t *testing.T) {
	var buf bytes.Buffer
	rec := store.Record{
		RunID:     "run-2",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Results:   []result.Result{result.Fail("ip-api.com", result.Request, "timeout")},
	}
	if err := ToCSV([]store.Record{rec}, &buf); err != nil {
		t.Fatalf("ToCSV error = %v", err)
	}
	if !strings.Contains(buf.String(), "Request: timeout") {
		t.Fatalf("expected rendered error in csv, got %q", buf.String())
	}
}
