package providers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IPQueryIO queries ipquery.io, which already expresses risk as a 0-100
// score rather than a trust score, so no inversion is needed.
type IPQueryIO struct{}

func (a *IPQueryIO) Name() string { return "ipquery.io" }

type ipQueryIOResp struct {
	IP   string `json:"ip"`
	ISP  struct {
		ASN string `json:"asn"`
		Org string `json:"org"`
	} `json:"isp"`
	Location struct {
		Country  string  `json:"country"`
		Region   string  `json:"region"`
		City     string  `json:"city"`
		Latitude float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone string  `json:"timezone"`
	} `json:"location"`
	Risk struct {
		IsVPN      bool `json:"is_vpn"`
		IsProxy    bool `json:"is_proxy"`
		IsTor      bool `json:"is_tor"`
		IsDatacenter bool `json:"is_datacenter"`
		RiskScore  uint8 `json:"risk_score"`
	} `json:"risk"`
}

func (a *IPQueryIO) Check(ctx context.Context, target *netip.Addr) []result.Result {
	path := ""
	if target != nil {
		path = target.String()
	}
	url := fmt.Sprintf("https://api.ipquery.io/%s?format=json", path)

	var resp ipQueryIOResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	ip, err := netip.ParseAddr(resp.IP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.IP))
	}

	r := result.Ok(a.Name(), ip)
	if num, _, ok := sanitize.ASN(resp.ISP.ASN); ok {
		r.AutonomousSystem = &result.AS{Number: num, Name: resp.ISP.Org}
	}
	lat, lon := sanitize.LatLon(fmt.Sprintf("%v", resp.Location.Latitude), fmt.Sprintf("%v", resp.Location.Longitude))
	var coords *result.Coordinates
	if lat != nil && lon != nil {
		coords = &result.Coordinates{Lat: *lat, Lon: *lon}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.Location.Country),
		Province:    sanitize.String(resp.Location.Region),
		City:        sanitize.String(resp.Location.City),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.Location.Timezone),
	}

	var tags []result.RiskTag
	if resp.Risk.IsTor {
		tags = append(tags, result.RiskTag{Kind: result.Tor})
	}
	if resp.Risk.IsProxy || resp.Risk.IsVPN {
		tags = append(tags, result.RiskTag{Kind: result.Proxy})
	}
	if resp.Risk.IsDatacenter {
		tags = append(tags, result.RiskTag{Kind: result.Hosting})
	}
	score := resp.Risk.RiskScore
	r.Risk = &result.Risk{Score: &score, Tags: tags}
	return single(r)
}
