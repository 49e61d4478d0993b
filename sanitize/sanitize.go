// Package sanitize normalizes the small set of field shapes provider
// adapters repeatedly have to clean up: null-ish placeholder strings,
// "AS1234 Name"-style ASN strings, and JSONP callback wrappers.
package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

var nullish = map[string]struct{}{
	"":        {},
	"-":       {},
	"unknown": {},
	"未知":      {},
}

// String returns nil when s is empty, "-", "unknown" (case-insensitive), or
// "未知" — the placeholder values providers use in place of omitting a
// field entirely — and a pointer to the trimmed string otherwise.
func String(s string) *string {
	trimmed := strings.TrimSpace(s)
	if _, dead := nullish[strings.ToLower(trimmed)]; dead {
		return nil
	}
	return &trimmed
}

// ASN parses strings like "AS13335 Cloudflare, Inc." or "13335" into a
// number and the remaining organization name. ok is false when no leading
// number could be parsed.
func ASN(s string) (number uint32, name string, ok bool) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "AS")
	trimmed = strings.TrimPrefix(trimmed, "as")
	fields := strings.SplitN(trimmed, " ", 2)
	n, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 32)
	if err != nil {
		return 0, "", false
	}
	if len(fields) == 2 {
		name = strings.TrimSpace(fields[1])
	}
	return uint32(n), name, true
}

// LatLon returns the trimmed, sanitized string forms of lat/lon, or nil for
// either side that turns out to be a null-ish placeholder. Coordinates are
// kept as strings throughout the pipeline; converting to float64 would
// silently reformat precision no provider guarantees.
func LatLon(lat, lon string) (*string, *string) {
	return String(lat), String(lon)
}

var jsonpWrapper = regexp.MustCompile(`^\s*[A-Za-z_$][A-Za-z0-9_$]*\s*\((.*)\)\s*;?\s*$`)

// StripJSONP unwraps a JSONP response body like "geoplugin_(...)": into the
// bare JSON payload it wraps. If body does not look JSONP-wrapped, it is
// returned unchanged.
func StripJSONP(body string) string {
	m := jsonpWrapper.FindStringSubmatch(body)
	if m == nil {
		return body
	}
	return m[1]
}
