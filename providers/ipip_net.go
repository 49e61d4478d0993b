package providers

import (
	"context"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IPIPNet queries ipip.net's free local-discovery endpoint. Local-only: it
// reports only the caller's own address.
type IPIPNet struct{}

func (a *IPIPNet) Name() string { return "ipip.net" }

type ipipNetResp struct {
	Ret  string   `json:"ret"`
	Data struct {
		IP       string   `json:"ip"`
		Location []string `json:"location"`
	} `json:"data"`
}

func (a *IPIPNet) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		return single(result.Fail(a.Name(), result.NotSupported, "arbitrary IP lookup is not supported"))
	}

	var resp ipipNetResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), "https://myip.ipip.net/json", nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	if resp.Ret != "ok" {
		return single(result.Fail(a.Name(), result.Request, resp.Ret))
	}
	ip, err := netip.ParseAddr(resp.Data.IP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.Data.IP))
	}

	r := result.Ok(a.Name(), ip)
	loc := resp.Data.Location
	get := func(i int) string {
		if i < len(loc) {
			return loc[i]
		}
		return ""
	}
	// location is ["country", "province", "city", "isp"]
	r.Region = &result.Region{
		Country:  sanitize.String(get(0)),
		Province: sanitize.String(get(1)),
		City:     sanitize.String(get(2)),
	}
	if isp := sanitize.String(get(3)); isp != nil {
		r.AutonomousSystem = &result.AS{Name: *isp}
	}
	return single(r)
}
