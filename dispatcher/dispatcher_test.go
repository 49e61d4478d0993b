package dispatcher

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"github.com/example/ipfan/providers"
	"github.com/example/ipfan/result"
)

type fakeAdapter struct {
	name  string
	delay time.Duration
	out   []result.Result
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Check(ctx context.Context, target *netip.Addr) []result.Result {
	time.Sleep(f.delay)
	return f.out
}

func TestRunDeliversEveryAdapterResult(t *testing.T) {
	ip := netip.MustParseAddr("1.1.1.1")
	reg := []providers.Adapter{
		&fakeAdapter{name: "fast", out: []result.Result{result.Ok("fast", ip)}},
		&fakeAdapter{name: "slow", delay: 20 * time.Millisecond, out: []result.Result{result.Ok("slow", ip)}},
		&fakeAdapter{name: "failing", out: []result.Result{result.Fail("failing", result.Request, "boom")}},
	}

	got := Collect(Run(context.Background(), reg, nil))
	if len(got) != 3 {
		t.Fatalf("Collect() = %d results, want 3", len(got))
	}
}

func TestRunStampsUsedTimeOnEveryResult(t *testing.T) {
	ip := netip.MustParseAddr("1.1.1.1")
	reg := []providers.Adapter{
		&fakeAdapter{name: "a", delay: 5 * time.Millisecond, out: []result.Result{result.Ok("a", ip)}},
	}
	got := Collect(Run(context.Background(), reg, nil))
	if got[0].UsedTime <= 0 {
		t.Fatalf("UsedTime = %d, want > 0", got[0].UsedTime)
	}
}

func TestRunDoesNotLetOneAdapterBlockAnother(t *testing.T) {
	ip := netip.MustParseAddr("1.1.1.1")
	reg := []providers.Adapter{
		&fakeAdapter{name: "never-returns-fast", delay: 50 * time.Millisecond, out: []result.Result{result.Ok("slow", ip)}},
		&fakeAdapter{name: "immediate", out: []result.Result{result.Ok("immediate", ip)}},
	}

	ch := Run(context.Background(), reg, nil)
	select {
	case r := <-ch:
		if r.Provider != "immediate" && r.Provider != "slow" {
			t.Fatalf("unexpected provider %q", r.Provider)
		}
	case <-time.After(30 * time.Millisecond):
		t.Fatalf("timed out waiting for the fast adapter's result")
	}
	// drain the rest so the goroutine exits cleanly
	for range ch {
	}
}
