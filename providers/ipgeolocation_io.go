package providers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IPGeolocationIO queries ipgeolocation.io, which requires a key. Its
// security.is_tor-style object is only present on paid tiers; on the free
// tier the field is simply absent from the payload rather than false, so
// the struct leaves it as a pointer and treats a missing object as "no
// tags", not as an error.
type IPGeolocationIO struct {
	Key string
}

func (a *IPGeolocationIO) Name() string { return "ipgeolocation.io" }

type ipGeolocationIOResp struct {
	IP          string `json:"ip"`
	CountryName string `json:"country_name"`
	StateProv   string `json:"state_prov"`
	City        string `json:"city"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	TimeZone    struct {
		Name string `json:"name"`
	} `json:"time_zone"`
	ISP      string `json:"isp"`
	Security *struct {
		IsTor   bool `json:"is_tor"`
		IsProxy bool `json:"is_proxy"`
	} `json:"security"`
	Message string `json:"message"`
}

func (a *IPGeolocationIO) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if a.Key == "" {
		return single(result.Fail(a.Name(), result.NotSupported, "no API key configured"))
	}
	ipParam := ""
	if target != nil {
		ipParam = "&ip=" + target.String()
	}
	url := fmt.Sprintf("https://api.ipgeolocation.io/ipgeo?apiKey=%s%s", a.Key, ipParam)

	var resp ipGeolocationIOResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	ip, err := netip.ParseAddr(resp.IP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.Message))
	}

	r := result.Ok(a.Name(), ip)
	if isp := sanitize.String(resp.ISP); isp != nil {
		r.AutonomousSystem = &result.AS{Name: *isp}
	}
	lat, lon := sanitize.LatLon(resp.Latitude, resp.Longitude)
	var coords *result.Coordinates
	if lat != nil && lon != nil {
		coords = &result.Coordinates{Lat: *lat, Lon: *lon}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.CountryName),
		Province:    sanitize.String(resp.StateProv),
		City:        sanitize.String(resp.City),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.TimeZone.Name),
	}
	if resp.Security != nil {
		var tags []result.RiskTag
		if resp.Security.IsTor {
			tags = append(tags, result.RiskTag{Kind: result.Tor})
		}
		if resp.Security.IsProxy {
			tags = append(tags, result.RiskTag{Kind: result.Proxy})
		}
		if len(tags) > 0 {
			r.Risk = &result.Risk{Tags: tags}
		}
	}
	return single(r)
}
