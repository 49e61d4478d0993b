package providers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IPDataCo queries api.ipdata.co, which requires an API key and reports
// threat classification as several independent booleans.
type IPDataCo struct {
	Key string
}

func (a *IPDataCo) Name() string { return "ipdata.co" }

type ipDataCoResp struct {
	IP        string `json:"ip"`
	City      string `json:"city"`
	Region    string `json:"region"`
	CountryName string `json:"country_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TimeZone  struct {
		Name string `json:"name"`
	} `json:"time_zone"`
	ASN struct {
		ASN    string `json:"asn"`
		Name   string `json:"name"`
		Domain string `json:"domain"`
		Type   string `json:"type"`
	} `json:"asn"`
	Threat struct {
		IsTor            bool `json:"is_tor"`
		IsProxy          bool `json:"is_proxy"`
		IsAnonymous      bool `json:"is_anonymous"`
		IsKnownAttacker  bool `json:"is_known_attacker"`
		IsKnownAbuser    bool `json:"is_known_abuser"`
		IsThreat         bool `json:"is_threat"`
		IsBogon          bool `json:"is_bogon"`
		IsDatacenter     bool `json:"is_datacenter"`
	} `json:"threat"`
	Message string `json:"message"`
}

func (a *IPDataCo) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if a.Key == "" {
		return single(result.Fail(a.Name(), result.NotSupported, "no API key configured"))
	}
	path := ""
	if target != nil {
		path = target.String() + "/"
	}
	url := fmt.Sprintf("https://api.ipdata.co/%s?api-key=%s", path, a.Key)

	var resp ipDataCoResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	ip, err := netip.ParseAddr(resp.IP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.Message))
	}

	r := result.Ok(a.Name(), ip)
	if num, _, ok := sanitize.ASN(resp.ASN.ASN); ok {
		r.AutonomousSystem = &result.AS{Number: num, Name: resp.ASN.Name}
	}
	lat, lon := sanitize.LatLon(fmt.Sprintf("%v", resp.Latitude), fmt.Sprintf("%v", resp.Longitude))
	var coords *result.Coordinates
	if lat != nil && lon != nil {
		coords = &result.Coordinates{Lat: *lat, Lon: *lon}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.CountryName),
		Province:    sanitize.String(resp.Region),
		City:        sanitize.String(resp.City),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.TimeZone.Name),
	}

	var tags []result.RiskTag
	if resp.Threat.IsTor {
		tags = append(tags, result.RiskTag{Kind: result.Tor})
	}
	if resp.Threat.IsProxy || resp.Threat.IsAnonymous {
		tags = append(tags, result.RiskTag{Kind: result.Proxy})
	}
	if resp.Threat.IsDatacenter || resp.ASN.Type == "hosting" {
		tags = append(tags, result.RiskTag{Kind: result.Hosting})
	}
	if resp.Threat.IsKnownAttacker || resp.Threat.IsKnownAbuser {
		tags = append(tags, result.RiskTag{Kind: result.Other, Label: "Known Abuser"})
	}
	if len(tags) > 0 {
		r.Risk = &result.Risk{Tags: tags}
	}
	return single(r)
}
