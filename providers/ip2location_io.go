package providers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IP2LocationIO queries ip2location.io, which requires a key and reports a
// single is_proxy boolean instead of a finer-grained taxonomy.
type IP2LocationIO struct {
	Key string
}

func (a *IP2LocationIO) Name() string { return "ip2location.io" }

type ip2LocationIOResp struct {
	IP          string  `json:"ip"`
	CountryName string  `json:"country_name"`
	RegionName  string  `json:"region_name"`
	CityName    string  `json:"city_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TimeZone    string  `json:"time_zone"`
	ASN         string  `json:"asn"`
	AS          string  `json:"as"`
	IsProxy     bool    `json:"is_proxy"`
	Error       *struct {
		ErrorMessage string `json:"error_message"`
	} `json:"error"`
}

func (a *IP2LocationIO) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if a.Key == "" {
		return single(result.Fail(a.Name(), result.NotSupported, "no API key configured"))
	}
	ipParam := ""
	if target != nil {
		ipParam = "&ip=" + target.String()
	}
	url := fmt.Sprintf("https://api.ip2location.io/?key=%s%s", a.Key, ipParam)

	var resp ip2LocationIOResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	if resp.Error != nil {
		return single(result.Fail(a.Name(), result.Request, resp.Error.ErrorMessage))
	}
	ip, err := netip.ParseAddr(resp.IP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.IP))
	}

	r := result.Ok(a.Name(), ip)
	if num, _, ok := sanitize.ASN(resp.ASN); ok {
		r.AutonomousSystem = &result.AS{Number: num, Name: resp.AS}
	}
	lat, lon := sanitize.LatLon(fmt.Sprintf("%v", resp.Latitude), fmt.Sprintf("%v", resp.Longitude))
	var coords *result.Coordinates
	if lat != nil && lon != nil {
		coords = &result.Coordinates{Lat: *lat, Lon: *lon}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.CountryName),
		Province:    sanitize.String(resp.RegionName),
		City:        sanitize.String(resp.CityName),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.TimeZone),
	}
	if resp.IsProxy {
		r.Risk = &result.Risk{Tags: []result.RiskTag{{Kind: result.Proxy}}}
	}
	return single(r)
}
