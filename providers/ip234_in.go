package providers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IP234In queries ip234.in, which reports its risk score directly; taken at
// face value, with no inversion.
type IP234In struct{}

func (a *IP234In) Name() string { return "ip234.in" }

// ip234InOverrideURL lets tests redirect requests to an httptest server.
var ip234InOverrideURL string

type ip234InResp struct {
	IP      string `json:"ip"`
	Country string `json:"country"`
	City    string `json:"city"`
	ISP     string `json:"isp"`
	Risk    struct {
		Score uint8 `json:"score"`
	} `json:"risk"`
}

func (a *IP234In) Check(ctx context.Context, target *netip.Addr) []result.Result {
	base := "https://ip234.in/api"
	if ip234InOverrideURL != "" {
		base = ip234InOverrideURL
	}
	path := ""
	if target != nil {
		path = target.String()
	}
	url := fmt.Sprintf("%s/%s", base, path)

	var resp ip234InResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	ip, err := netip.ParseAddr(resp.IP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.IP))
	}

	r := result.Ok(a.Name(), ip)
	if isp := sanitize.String(resp.ISP); isp != nil {
		r.AutonomousSystem = &result.AS{Name: *isp}
	}
	r.Region = &result.Region{
		Country: sanitize.String(resp.Country),
		City:    sanitize.String(resp.City),
	}
	risk := resp.Risk.Score
	r.Risk = &result.Risk{Score: &risk}
	return single(r)
}
