// Package dispatcher fans a lookup out across every provider adapter
// concurrently, each on its own goroutine, and streams their results back
// as they complete rather than waiting for the slowest adapter.
package dispatcher

import (
	"context"
	"net/netip"
	"sync"
	"time"

	"github.com/example/ipfan/providers"
	"github.com/example/ipfan/result"
)

// Run spawns one goroutine per adapter and returns a channel delivering
// each provider's Result(s) as soon as that provider finishes, in
// completion order rather than registry order. The channel is closed once
// every adapter goroutine has returned.
//
// No adapter can starve or abort another: a slow or failing provider's
// goroutine runs to its own 5s client-level deadline independent of every
// other goroutine, and an error becomes a failed Result rather than a
// cancellation signal. This rules out golang.org/x/sync/errgroup, whose
// WithContext cancels every other in-flight call on the first error.
func Run(ctx context.Context, reg []providers.Adapter, target *netip.Addr) <-chan result.Result {
	out := make(chan result.Result, len(reg))
	var wg sync.WaitGroup
	wg.Add(len(reg))

	for _, adapter := range reg {
		go func(a providers.Adapter) {
			defer wg.Done()
			runAdapter(ctx, a, target, out)
		}(adapter)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// runAdapter times one adapter's Check call and stamps UsedTime onto every
// Result it produces, then delivers them to out, respecting ctx
// cancellation on the send so a dropped receiver never blocks this
// goroutine forever.
func runAdapter(ctx context.Context, a providers.Adapter, target *netip.Addr, out chan<- result.Result) {
	start := time.Now()
	results := a.Check(ctx, target)
	elapsed := time.Since(start).Nanoseconds()

	for _, r := range results {
		r.UsedTime = elapsed
		select {
		case out <- r:
		case <-ctx.Done():
			return
		}
	}
}

// Collect drains ch into a slice, for callers (table/JSON modes) that need
// every result before rendering anything.
func Collect(ch <-chan result.Result) []result.Result {
	var all []result.Result
	for r := range ch {
		all = append(all, r)
	}
	return all
}
