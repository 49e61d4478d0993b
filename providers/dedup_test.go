package providers

import (
	"testing"

	"github.com/example/ipfan/result"
)

func TestDedupeByIPDropsRepeats(t *testing.T) {
	ip := mustAddr("9.9.9.9")
	rs := []result.Result{
		result.Ok("a", ip),
		result.Ok("a", ip),
	}
	got := dedupeByIP(rs)
	if len(got) != 1 {
		t.Fatalf("dedupeByIP() = %d results, want 1", len(got))
	}
}

func TestDedupeByIPKeepsDistinctAddresses(t *testing.T) {
	rs := []result.Result{
		result.Ok("a", mustAddr("9.9.9.9")),
		result.Ok("a", mustAddr("2001:db8::1")),
	}
	got := dedupeByIP(rs)
	if len(got) != 2 {
		t.Fatalf("dedupeByIP() = %d results, want 2", len(got))
	}
}

func TestDedupeByIPKeepsErrorResultsWithoutIP(t *testing.T) {
	rs := []result.Result{
		result.Fail("a", result.Request, "boom"),
		result.Fail("a", result.Request, "boom again"),
	}
	got := dedupeByIP(rs)
	if len(got) != 2 {
		t.Fatalf("dedupeByIP() = %d results, want 2 (nil-IP results are never deduped)", len(got))
	}
}
