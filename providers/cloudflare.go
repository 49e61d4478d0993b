package providers

import (
	"context"
	"net/netip"
	"strings"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
)

// CloudflareTrace reads Cloudflare's cdn-cgi/trace endpoint, a plaintext
// key=value body (not JSON) served directly off fixed anycast addresses so
// the lookup never touches DNS. Local-only.
type CloudflareTrace struct{}

func (a *CloudflareTrace) Name() string { return "Cloudflare" }

func (a *CloudflareTrace) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		return single(result.Fail(a.Name(), result.NotSupported, "arbitrary IP lookup is not supported"))
	}
	v4, v6 := concurrent2(
		func() result.Result { return a.fetch(ctx, "https://1.1.1.1/cdn-cgi/trace") },
		func() result.Result { return a.fetch(ctx, "https://[2606:4700:4700::1111]/cdn-cgi/trace") },
	)
	return dedupeByIP([]result.Result{v4, v6})
}

func (a *CloudflareTrace) fetch(ctx context.Context, url string) result.Result {
	body, tag, msg := getBody(ctx, httpclient.Get(httpclient.Default), url, nil)
	if tag != result.None {
		return result.Result{Provider: a.Name(), Err: result.Error{Tag: tag, Message: msg}}
	}

	fields := map[string]string{}
	for _, line := range strings.Split(string(body), "\n") {
		kv := strings.SplitN(strings.TrimSpace(line), "=", 2)
		if len(kv) == 2 {
			fields[kv[0]] = kv[1]
		}
	}

	ipStr, ok := fields["ip"]
	if !ok {
		return result.Fail(a.Name(), result.ParseIP, "ip field missing from trace body")
	}
	ip, err := netip.ParseAddr(ipStr)
	if err != nil {
		return result.Fail(a.Name(), result.ParseIP, ipStr)
	}
	return result.Ok(a.Name(), ip)
}
