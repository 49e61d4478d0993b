package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IPCheckingMaxmind proxies MaxMind GeoLite2 lookups through ipcheck.ing.
// For an arbitrary target it queries directly; for local discovery it
// first learns the caller's own address from a per-family plaintext-echo
// endpoint (4.ipcheck.ing / 6.ipcheck.ing) before issuing the lookup, since
// the lookup endpoint itself has no "tell me my own address" mode.
type IPCheckingMaxmind struct{}

func (a *IPCheckingMaxmind) Name() string { return "IpCheck.ing Maxmind" }

type maxmindRespShape struct {
	IP          string   `json:"ip"`
	City        string   `json:"city"`
	CountryName string   `json:"country_name"`
	Region      string   `json:"region"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Asn         string   `json:"asn"`
	Org         string   `json:"org"`
}

func (a *IPCheckingMaxmind) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		return single(a.lookup(ctx, *target))
	}
	v4, v6 := concurrent2(
		func() result.Result { return a.discoverThenLookup(ctx, httpclient.Get(httpclient.ForceV4), "https://4.ipcheck.ing/") },
		func() result.Result { return a.discoverThenLookup(ctx, httpclient.Get(httpclient.ForceV6), "https://6.ipcheck.ing/") },
	)
	return dedupeByIP([]result.Result{v4, v6})
}

func (a *IPCheckingMaxmind) discoverThenLookup(ctx context.Context, client *http.Client, echoURL string) result.Result {
	body, tag, msg := getBody(ctx, client, echoURL, nil)
	if tag != result.None {
		return result.Result{Provider: a.Name(), Err: result.Error{Tag: tag, Message: msg}}
	}
	ip, err := netip.ParseAddr(string(body))
	if err != nil {
		return result.Fail(a.Name(), result.ParseIP, string(body))
	}
	return a.lookup(ctx, ip)
}

func (a *IPCheckingMaxmind) lookup(ctx context.Context, ip netip.Addr) result.Result {
	headers := map[string]string{
		"Referer":    "https://ipcheck.ing/",
		"User-Agent": httpclient.UserAgent(),
	}
	url := fmt.Sprintf("https://ipcheck.ing/api/maxmind?ip=%s&lang=en", ip.String())

	var resp maxmindRespShape
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, headers, &resp); errp != nil {
		return result.Result{Provider: a.Name(), Err: *errp}
	}

	r := result.Ok(a.Name(), ip)
	if num, _, ok := sanitize.ASN(resp.Asn); ok {
		r.AutonomousSystem = &result.AS{Number: num, Name: resp.Org}
	}
	var coords *result.Coordinates
	if resp.Latitude != nil && resp.Longitude != nil {
		lat, lon := sanitize.LatLon(fmt.Sprintf("%v", *resp.Latitude), fmt.Sprintf("%v", *resp.Longitude))
		if lat != nil && lon != nil {
			coords = &result.Coordinates{Lat: *lat, Lon: *lon}
		}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.CountryName),
		Province:    sanitize.String(resp.Region),
		City:        sanitize.String(resp.City),
		Coordinates: coords,
	}
	return r
}
