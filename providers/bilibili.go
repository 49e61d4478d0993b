package providers

import (
	"context"
	"net/netip"
	"strings"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// Bilibili queries Bilibili's local-IP lookup API, which packs
// country/region/city into one hyphen-joined compound string rather than
// separate fields. Local-only.
type Bilibili struct{}

func (a *Bilibili) Name() string { return "Bilibili" }

type bilibiliResp struct {
	Code int `json:"code"`
	Data struct {
		Addr         string `json:"addr"`
		AddrLocation string `json:"addr_location"`
	} `json:"data"`
}

func (a *Bilibili) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		return single(result.Fail(a.Name(), result.NotSupported, "arbitrary IP lookup is not supported"))
	}
	var resp bilibiliResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), "https://api.bilibili.com/x/web-interface/zone", nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	if resp.Code != 0 {
		return single(result.Fail(a.Name(), result.Request, "unexpected response code"))
	}
	ip, err := netip.ParseAddr(resp.Data.Addr)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.Data.Addr))
	}

	r := result.Ok(a.Name(), ip)
	parts := strings.SplitN(resp.Data.AddrLocation, "-", 3)
	get := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	r.Region = &result.Region{
		Country:  sanitize.String(get(0)),
		Province: sanitize.String(get(1)),
		City:     sanitize.String(get(2)),
	}
	return single(r)
}
