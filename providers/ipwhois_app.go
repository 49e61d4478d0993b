package providers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IPWhoisApp queries ipwhois.app, which reports risk as a nested object of
// independent booleans rather than a single score, gated behind
// ?security=1. Grounded on the queryIPWhois function in
// other_examples/b646bb2e_akl7777777-ip-intel__providers.go.go.
type IPWhoisApp struct{}

func (a *IPWhoisApp) Name() string { return "ipwhois.app" }

type ipWhoisAppResp struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	IP          string `json:"ip"`
	Country     string `json:"country"`
	Region      string `json:"region"`
	City        string `json:"city"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Timezone  struct {
		ID string `json:"id"`
	} `json:"timezone"`
	ConnectionInfo struct {
		ASN uint32 `json:"asn"`
		ISP string `json:"isp"`
	} `json:"connection"`
	Security struct {
		Anonymous bool `json:"anonymous"`
		Proxy     bool `json:"proxy"`
		VPN       bool `json:"vpn"`
		Tor       bool `json:"tor"`
		Hosting   bool `json:"hosting"`
	} `json:"security"`
}

func (a *IPWhoisApp) Check(ctx context.Context, target *netip.Addr) []result.Result {
	path := ""
	if target != nil {
		path = target.String()
	}
	url := fmt.Sprintf("https://ipwhois.app/json/%s?objects=success,message,ip,country,region,city,latitude,longitude,timezone,connection,security&security=1", path)

	var resp ipWhoisAppResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	if !resp.Success {
		return single(result.Fail(a.Name(), result.Request, resp.Message))
	}

	ip, err := netip.ParseAddr(resp.IP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.IP))
	}

	r := result.Ok(a.Name(), ip)
	if resp.ConnectionInfo.ASN != 0 {
		r.AutonomousSystem = &result.AS{Number: resp.ConnectionInfo.ASN, Name: resp.ConnectionInfo.ISP}
	}
	lat, lon := sanitize.LatLon(resp.Latitude, resp.Longitude)
	var coords *result.Coordinates
	if lat != nil && lon != nil {
		coords = &result.Coordinates{Lat: *lat, Lon: *lon}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.Country),
		Province:    sanitize.String(resp.Region),
		City:        sanitize.String(resp.City),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.Timezone.ID),
	}

	var tags []result.RiskTag
	if resp.Security.Tor {
		tags = append(tags, result.RiskTag{Kind: result.Tor})
	}
	if resp.Security.Proxy || resp.Security.Anonymous || resp.Security.VPN {
		tags = append(tags, result.RiskTag{Kind: result.Proxy})
	}
	if resp.Security.Hosting {
		tags = append(tags, result.RiskTag{Kind: result.Hosting})
	}
	if len(tags) > 0 {
		r.Risk = &result.Risk{Tags: tags}
	}
	return single(r)
}
