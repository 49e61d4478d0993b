package sanitize

import "testing"

func TestStringStripsNullishPlaceholders(t *testing.T) {
	for _, in := range []string{"", "-", "unknown", "UNKNOWN", "未知", "  "} {
		if got := String(in); got != nil {
			t.Fatalf("String(%q) = %q, want nil", in, *got)
		}
	}
}

func TestStringKeepsRealValues(t *testing.T) {
	got := String("  Cloudflare, Inc.  ")
	if got == nil || *got != "Cloudflare, Inc." {
		t.Fatalf("String() = %v, want trimmed value", got)
	}
}

func TestASNParsesNumberAndName(t *testing.T) {
	n, name, ok := ASN("AS13335 Cloudflare, Inc.")
	if !ok || n != 13335 || name != "Cloudflare, Inc." {
		t.Fatalf("ASN() = (%d, %q, %v), want (13335, \"Cloudflare, Inc.\", true)", n, name, ok)
	}
}

func TestASNParsesBareNumber(t *testing.T) {
	n, name, ok := ASN("13335")
	if !ok || n != 13335 || name != "" {
		t.Fatalf("ASN() = (%d, %q, %v), want (13335, \"\", true)", n, name, ok)
	}
}

func TestASNRejectsNonNumeric(t *testing.T) {
	if _, _, ok := ASN("garbage"); ok {
		t.Fatalf("ASN(garbage) ok = true, want false")
	}
}

func TestStripJSONPUnwrapsCallback(t *testing.T) {
	got := StripJSONP(`geoplugin_(  {"ip":"1.2.3.4"}  );`)
	if got != `  {"ip":"1.2.3.4"}  ` {
		t.Fatalf("StripJSONP() = %q", got)
	}
}

func TestStripJSONPPassesThroughPlainJSON(t *testing.T) {
	in := `{"ip":"1.2.3.4"}`
	if got := StripJSONP(in); got != in {
		t.Fatalf("StripJSONP() = %q, want unchanged", got)
	}
}
