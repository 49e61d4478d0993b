package providers

import (
	"context"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
)

// HttpbinOrg queries httpbin.org/ip, the minimal-shape reference adapter:
// it reports nothing but the caller's own address, no geolocation or risk
// data at all. Local-only.
type HttpbinOrg struct{}

func (a *HttpbinOrg) Name() string { return "httpbin.org" }

type httpbinOrgResp struct {
	Origin string `json:"origin"`
}

func (a *HttpbinOrg) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		return single(result.Fail(a.Name(), result.NotSupported, "arbitrary IP lookup is not supported"))
	}
	var resp httpbinOrgResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), "https://httpbin.org/ip", nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	ip, err := netip.ParseAddr(resp.Origin)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.Origin))
	}
	return single(result.Ok(a.Name(), ip))
}
