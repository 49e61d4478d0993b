package providers

import (
	"context"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// MyIPLa queries myip.la's minimal local-discovery JSON endpoint.
type MyIPLa struct{}

func (a *MyIPLa) Name() string { return "myip.la" }

type myIPLaResp struct {
	IP      string `json:"ip"`
	Country string `json:"country"`
	City    string `json:"city"`
}

func (a *MyIPLa) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		return single(result.Fail(a.Name(), result.NotSupported, "arbitrary IP lookup is not supported"))
	}
	var resp myIPLaResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), "https://www.myip.la/en/pub/json", nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	ip, err := netip.ParseAddr(resp.IP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.IP))
	}
	r := result.Ok(a.Name(), ip)
	r.Region = &result.Region{
		Country: sanitize.String(resp.Country),
		City:    sanitize.String(resp.City),
	}
	return single(r)
}
