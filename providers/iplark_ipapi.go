package providers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IPLarkIPAPI queries one of IP-Lark's several multiplexed backends — the
// one re-exposing an ip-api.com-shaped payload under IP-Lark's own domain.
// Representative of the "aggregator re-exposing another provider's schema"
// pattern: the field names match ip-api.com's even though the host does
// not.
type IPLarkIPAPI struct{}

func (a *IPLarkIPAPI) Name() string { return "IP-Lark.com" }

type ipLarkIPAPIResp struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Country    string `json:"country"`
	RegionName string `json:"regionName"`
	City       string `json:"city"`
	Lat        string `json:"lat"`
	Lon        string `json:"lon"`
	Isp        string `json:"isp"`
	As         string `json:"as"`
	Query      string `json:"query"`
}

func (a *IPLarkIPAPI) Check(ctx context.Context, target *netip.Addr) []result.Result {
	path := ""
	if target != nil {
		path = target.String()
	}
	url := fmt.Sprintf("https://ip-lark.com/json/%s", path)

	var resp ipLarkIPAPIResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	if resp.Status != "success" {
		return single(result.Fail(a.Name(), result.Request, resp.Message))
	}
	ip, err := netip.ParseAddr(resp.Query)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.Query))
	}

	r := result.Ok(a.Name(), ip)
	if num, name, ok := sanitize.ASN(resp.As); ok {
		isp := name
		if s := sanitize.String(resp.Isp); s != nil {
			isp = *s
		}
		r.AutonomousSystem = &result.AS{Number: num, Name: isp}
	}
	lat, lon := sanitize.LatLon(resp.Lat, resp.Lon)
	var coords *result.Coordinates
	if lat != nil && lon != nil {
		coords = &result.Coordinates{Lat: *lat, Lon: *lon}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.Country),
		Province:    sanitize.String(resp.RegionName),
		City:        sanitize.String(resp.City),
		Coordinates: coords,
	}
	return single(r)
}
