// Package httpclient exposes the three process-wide HTTP client singletons
// provider adapters share: a default client, one forced to dial over IPv4,
// and one forced to dial over IPv6.
package httpclient

import (
	"context"
	"net"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"
)

// Bind selects which local address family a client dials from.
type Bind int

const (
	Default Bind = iota
	ForceV4
	ForceV6
)

const requestTimeout = 5 * time.Second

const userAgent = "curl/7.88.1"

var (
	once      [3]sync.Once
	clients   [3]*http.Client
	overrideTimeout time.Duration
	timeoutMu sync.Mutex
)

// SetTimeout overrides the per-request timeout used by future Get calls.
// A zero duration restores the 5s default. Intended for the --timeout CLI
// flag; existing singletons already built keep their original timeout, so
// this must be called before the first Get of a run.
func SetTimeout(d time.Duration) {
	timeoutMu.Lock()
	overrideTimeout = d
	timeoutMu.Unlock()
}

func timeout() time.Duration {
	timeoutMu.Lock()
	defer timeoutMu.Unlock()
	if overrideTimeout > 0 {
		return overrideTimeout
	}
	return requestTimeout
}

func localAddr(b Bind) net.Addr {
	switch b {
	case ForceV4:
		return &net.TCPAddr{IP: net.IPv4zero}
	case ForceV6:
		return &net.TCPAddr{IP: net.IPv6unspecified}
	default:
		return nil
	}
}

func build(b Bind) *http.Client {
	jar, _ := cookiejar.New(nil)
	dialer := &net.Dialer{Timeout: timeout(), LocalAddr: localAddr(b)}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	}
	return &http.Client{
		Timeout:   timeout(),
		Jar:       jar,
		Transport: transport,
	}
}

// Get returns the shared client for the given bind, constructing it lazily
// on first use.
func Get(b Bind) *http.Client {
	once[b].Do(func() {
		clients[b] = build(b)
	})
	return clients[b]
}

// UserAgent is the fixed user agent every request carries, matching the
// upstream clients this engine's providers were ported from.
func UserAgent() string {
	return userAgent
}
