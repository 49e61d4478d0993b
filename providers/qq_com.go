package providers

import (
	"context"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// QQCom queries QQ's local-IP lookup API, which signals success with
// code == 0 rather than an HTTP status or a boolean. Local-only.
type QQCom struct{}

func (a *QQCom) Name() string { return "QQ.com" }

type qqComResp struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		IP       string `json:"ip"`
		Country  string `json:"country"`
		Province string `json:"province"`
		City     string `json:"city"`
	} `json:"data"`
}

func (a *QQCom) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		return single(result.Fail(a.Name(), result.NotSupported, "arbitrary IP lookup is not supported"))
	}
	var resp qqComResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), "https://r.inews.qq.com/api/ip2city", nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	if resp.Code != 0 {
		return single(result.Fail(a.Name(), result.Request, resp.Message))
	}
	ip, err := netip.ParseAddr(resp.Data.IP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.Data.IP))
	}
	r := result.Ok(a.Name(), ip)
	r.Region = &result.Region{
		Country:  sanitize.String(resp.Data.Country),
		Province: sanitize.String(resp.Data.Province),
		City:     sanitize.String(resp.Data.City),
	}
	return single(r)
}
