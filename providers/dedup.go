package providers

import "github.com/example/ipfan/result"

// dedupeByIP drops later Results whose IP matches an earlier one in rs,
// mirroring the rule that a dual-stack local-discovery adapter must not
// report the same address twice when both its v4 and v6 probes landed on
// the same underlying connection.
func dedupeByIP(rs []result.Result) []result.Result {
	seen := map[string]struct{}{}
	out := make([]result.Result, 0, len(rs))
	for _, r := range rs {
		if r.IP == nil {
			out = append(out, r)
			continue
		}
		key := r.IP.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
