package providers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IPAPICom queries ip-api.com, folding in the free and pro (key-gated)
// endpoints behind one adapter: when a key is configured, requests go to
// pro.ip-api.com instead of the rate-limited free host.
type IPAPICom struct {
	Key string
}

func (a *IPAPICom) Name() string { return "ip-api.com" }

// ipapiComOverrideURL lets tests redirect requests to an httptest server.
var ipapiComOverrideURL string

func ipapiComHost(key string) string {
	if key != "" {
		return "pro.ip-api.com"
	}
	return "ip-api.com"
}

type ipAPIComResp struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	Country     string  `json:"country"`
	RegionName  string  `json:"regionName"`
	City        string  `json:"city"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Timezone    string  `json:"timezone"`
	ISP         string  `json:"isp"`
	AS          string  `json:"as"`
	Query       string  `json:"query"`
	Proxy       bool    `json:"proxy"`
	Hosting     bool    `json:"hosting"`
	Mobile      bool    `json:"mobile"`
}

func (a *IPAPICom) Check(ctx context.Context, target *netip.Addr) []result.Result {
	base := fmt.Sprintf("https://%s/json", ipapiComHost(a.Key))
	if ipapiComOverrideURL != "" {
		base = ipapiComOverrideURL
	}
	query := "?fields=66846719&lang=en-US"
	if a.Key != "" {
		query += "&key=" + a.Key
	}
	path := ""
	if target != nil {
		path = "/" + target.String()
	}
	url := base + path + query

	var resp ipAPIComResp
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
	if num, name, ok := sanitize.ASN(resp.AS); ok {
		isp := name
		if s := sanitize.String(resp.ISP); s != nil {
			isp = *s
		}
		r.AutonomousSystem = &result.AS{Number: num, Name: isp}
	}

	lat, lon := sanitize.LatLon(fmt.Sprintf("%v", resp.Lat), fmt.Sprintf("%v", resp.Lon))
	var coords *result.Coordinates
	if lat != nil && lon != nil {
		coords = &result.Coordinates{Lat: *lat, Lon: *lon}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.Country),
		Province:    sanitize.String(resp.RegionName),
		City:        sanitize.String(resp.City),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.Timezone),
	}

	var tags []result.RiskTag
	if resp.Proxy {
		tags = append(tags, result.RiskTag{Kind: result.Proxy})
	}
	if resp.Hosting {
		tags = append(tags, result.RiskTag{Kind: result.Hosting})
	}
	if resp.Mobile {
		tags = append(tags, result.RiskTag{Kind: result.Mobile})
	}
	if len(tags) > 0 {
		r.Risk = &result.Risk{Tags: tags}
	}
	return single(r)
}
