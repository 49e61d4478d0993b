package render

import (
	"net/netip"
	"strings"
	"testing"

	"github.com/example/ipfan/config"
	"github.com/example/ipfan/result"
)

func TestTableSkipsFailedRows(t *testing.T) {
	ip := netip.MustParseAddr("1.2.3.4")
	results := []result.Result{
		result.Ok("good", ip),
		result.Fail("bad", result.Request, "boom"),
	}
	out := Table(results, config.Resolve(config.Flags{}))
	if strings.Contains(out, "bad") {
		t.Fatalf("Table() included a failed row:\n%s", out)
	}
	if !strings.Contains(out, "good") {
		t.Fatalf("Table() dropped a successful row:\n%s", out)
	}
}

func TestTableSubstitutesNAForAbsentFields(t *testing.T) {
	ip := netip.MustParseAddr("1.2.3.4")
	out := Table([]result.Result{result.Ok("p", ip)}, config.Resolve(config.Flags{All: true}))
	if !strings.Contains(out, "N/A") {
		t.Fatalf("Table() did not substitute N/A for absent fields:\n%s", out)
	}
}

func TestTableTreatsSentinelIPAsAbsent(t *testing.T) {
	placeholder := netip.MustParseAddr("0.0.0.0")
	out := Table([]result.Result{result.Ok("p", placeholder)}, config.Resolve(config.Flags{}))
	if strings.Contains(out, "0.0.0.0") {
		t.Fatalf("Table() displayed the absent-IP sentinel verbatim:\n%s", out)
	}
}
