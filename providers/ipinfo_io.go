package providers

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IPInfoIO queries ipinfo.io, which needs a token and reports lat/lon as
// one compound "lat,lon" string rather than two fields.
type IPInfoIO struct {
	Token string
}

func (a *IPInfoIO) Name() string { return "ipinfo.io" }

type ipInfoIOResp struct {
	IP       string `json:"ip"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Loc      string `json:"loc"`
	Org      string `json:"org"`
	Timezone string `json:"timezone"`
	Privacy  struct {
		VPN     bool `json:"vpn"`
		Proxy   bool `json:"proxy"`
		Tor     bool `json:"tor"`
		Relay   bool `json:"relay"`
		Hosting bool `json:"hosting"`
	} `json:"privacy"`
}

func (a *IPInfoIO) Check(ctx context.Context, target *netip.Addr) []result.Result {
	path := ""
	if target != nil {
		path = target.String() + "/"
	}
	query := ""
	if a.Token != "" {
		query = "?token=" + a.Token
	}
	url := fmt.Sprintf("https://ipinfo.io/%sjson%s", path, query)

	var resp ipInfoIOResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	ip, err := netip.ParseAddr(resp.IP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.IP))
	}

	r := result.Ok(a.Name(), ip)
	if num, name, ok := sanitize.ASN(resp.Org); ok {
		r.AutonomousSystem = &result.AS{Number: num, Name: name}
	}

	var coords *result.Coordinates
	if parts := strings.SplitN(resp.Loc, ",", 2); len(parts) == 2 {
		lat, lon := sanitize.LatLon(parts[0], parts[1])
		if lat != nil && lon != nil {
			coords = &result.Coordinates{Lat: *lat, Lon: *lon}
		}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.Country),
		Province:    sanitize.String(resp.Region),
		City:        sanitize.String(resp.City),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.Timezone),
	}

	var tags []result.RiskTag
	if resp.Privacy.Tor {
		tags = append(tags, result.RiskTag{Kind: result.Tor})
	}
	if resp.Privacy.Proxy || resp.Privacy.VPN {
		tags = append(tags, result.RiskTag{Kind: result.Proxy})
	}
	if resp.Privacy.Relay {
		tags = append(tags, result.RiskTag{Kind: result.Relay})
	}
	if resp.Privacy.Hosting {
		tags = append(tags, result.RiskTag{Kind: result.Hosting})
	}
	if len(tags) > 0 {
		r.Risk = &result.Risk{Tags: tags}
	}
	return single(r)
}
