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

// IPSb queries ip.sb, supporting both arbitrary-IP lookups and dual-stack
// local discovery via separate v4/v6 endpoints.
type IPSb struct{}

func (a *IPSb) Name() string { return "ip.sb" }

type ipSbResp struct {
	IP           string  `json:"ip"`
	Country      string  `json:"country"`
	Region       string  `json:"region"`
	City         string  `json:"city"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Timezone     string  `json:"timezone"`
	Organization string  `json:"organization"`
	ASN          uint32  `json:"asn"`
}

func (a *IPSb) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		return single(a.fetch(ctx, httpclient.Get(httpclient.Default), "https://api.ip.sb/geoip/"+target.String()))
	}
	v4, v6 := concurrent2(
		func() result.Result { return a.fetch(ctx, httpclient.Get(httpclient.ForceV4), "https://api-ipv4.ip.sb/geoip") },
		func() result.Result { return a.fetch(ctx, httpclient.Get(httpclient.ForceV6), "https://api-ipv6.ip.sb/geoip") },
	)
	return dedupeByIP([]result.Result{v4, v6})
}

func (a *IPSb) fetch(ctx context.Context, client *http.Client, url string) result.Result {
	var resp ipSbResp
	if errp := getJSON(ctx, client, url, nil, &resp); errp != nil {
		return result.Result{Provider: a.Name(), Err: *errp}
	}
	ip, err := netip.ParseAddr(resp.IP)
	if err != nil {
		return result.Fail(a.Name(), result.ParseIP, resp.IP)
	}

	r := result.Ok(a.Name(), ip)
	if resp.ASN != 0 {
		r.AutonomousSystem = &result.AS{Number: resp.ASN, Name: resp.Organization}
	}
	lat, lon := sanitize.LatLon(fmt.Sprintf("%v", resp.Latitude), fmt.Sprintf("%v", resp.Longitude))
	var coords *result.Coordinates
	if lat != nil && lon != nil {
		coords = &result.Coordinates{Lat: *lat, Lon: *lon}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.Country),
		Province:    sanitize.String(resp.Region),
		City:        sanitize.String(resp.City),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.Timezone),
	}
	return r
}
