package stream

import (
	"bytes"
	"net/netip"
	"strings"
	"testing"

	"github.com/example/ipfan/result"
)

func TestEncodeHasExactlyThirteenSeparators(t *testing.T) {
	var buf bytes.Buffer
	ip := mustAddr("1.2.3.4")
	e := NewEncoder(&buf)
	if err := e.Encode(result.Ok("test", ip)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	line := strings.TrimRight(buf.String(), "\n")
	if got := strings.Count(line, "|"); got != 13 {
		t.Fatalf("separator count = %d, want 13 (line: %q)", got, line)
	}
}

func TestEncodeUsesSentinelsForAbsentFields(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	r := result.Fail("test", result.Request, "timeout")
	if err := e.Encode(r); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	fields := strings.Split(strings.TrimRight(buf.String(), "\n"), "|")
	if fields[1] != "0.0.0.0" {
		t.Fatalf("ip field = %q, want sentinel 0.0.0.0", fields[1])
	}
	if fields[4] != "0" {
		t.Fatalf("asn field = %q, want sentinel 0", fields[4])
	}
	if fields[3] != "Request: timeout" {
		t.Fatalf("error field = %q", fields[3])
	}
}

func TestEncodeJoinsRiskTagsWithCommas(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	ip := mustAddr("1.2.3.4")
	r := result.Ok("test", ip)
	score := uint8(42)
	r.Risk = &result.Risk{
		Score: &score,
		Tags: []result.RiskTag{
			{Kind: result.Tor},
			{Kind: result.Other, Label: "iCloud Relay"},
		},
	}
	e.Encode(r)
	fields := strings.Split(strings.TrimRight(buf.String(), "\n"), "|")
	if fields[12] != "42" {
		t.Fatalf("risk score field = %q", fields[12])
	}
	if fields[13] != "Tor,iCloud Relay" {
		t.Fatalf("risk tags field = %q", fields[13])
	}
}

func mustAddr(s string) netip.Addr {
	return netip.MustParseAddr(s)
}
