// Package providers implements the fan-out engine's provider adapters: one
// file per upstream IP-intelligence API, each translating that API's own
// JSON shape into the canonical result.Result.
package providers

import (
	"context"
	"net/netip"

	"github.com/example/ipfan/result"
)

// Adapter is the uniform capability every provider exposes to the
// dispatcher. target is nil when the caller wants the machine's own public
// IP (as seen by the provider); a non-nil target asks the provider to look
// up that specific address, which not every provider supports.
type Adapter interface {
	// Name identifies the provider in Result.Provider and in CLI filters.
	Name() string
	// Check performs the lookup and returns one Result per address the
	// provider resolves (most adapters return exactly one; dual-stack
	// local-only adapters may return two, one per address family).
	Check(ctx context.Context, target *netip.Addr) []result.Result
}

// single is a convenience for the common case of an adapter returning
// exactly one Result.
func single(r result.Result) []result.Result {
	return []result.Result{r}
}
