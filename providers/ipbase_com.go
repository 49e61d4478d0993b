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

// IpbaseCom queries ipbase.com. Its threat_score is taken at face value as
// the canonical risk score, not inverted: the upstream already documents
// and emits it on the same 0 (clean) - 100 (worst) scale this engine uses.
// Supports both local dual-stack discovery and arbitrary-IP lookups.
type IpbaseCom struct {
	Key string
}

func (a *IpbaseCom) Name() string { return "Ipbase.com" }

type ipbaseComResp struct {
	Data struct {
		IP         string `json:"ip"`
		Connection struct {
			Asn int    `json:"asn"`
			Isp string `json:"isp"`
		} `json:"connection"`
		Location struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Country   struct {
				Name string `json:"name"`
			} `json:"country"`
			Region struct {
				Name string `json:"name"`
			} `json:"region"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
		} `json:"location"`
		Timezone struct {
			ID string `json:"id"`
		} `json:"timezone"`
		Security struct {
			IsVpn          bool  `json:"is_vpn"`
			IsProxy        bool  `json:"is_proxy"`
			IsTor          bool  `json:"is_tor"`
			IsDatacenter   bool  `json:"is_datacenter"`
			IsIcloudRelay  bool  `json:"is_icloud_relay"`
			ThreatScore    uint8 `json:"threat_score"`
		} `json:"security"`
	} `json:"data"`
}

func (a *IpbaseCom) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if a.Key == "" {
		return single(result.Fail(a.Name(), result.NotSupported, "no API key configured"))
	}
	if target != nil {
		return single(a.fetch(ctx, httpclient.Get(httpclient.Default), "&ip="+target.String()))
	}
	v4, v6 := concurrent2(
		func() result.Result { return a.fetch(ctx, httpclient.Get(httpclient.ForceV4), "") },
		func() result.Result { return a.fetch(ctx, httpclient.Get(httpclient.ForceV6), "") },
	)
	return dedupeByIP([]result.Result{v4, v6})
}

func (a *IpbaseCom) fetch(ctx context.Context, client *http.Client, ipParam string) result.Result {
	var resp ipbaseComResp
	url := fmt.Sprintf("https://api.ipbase.com/v2/info?apikey=%s%s", a.Key, ipParam)
	if errp := getJSON(ctx, client, url, nil, &resp); errp != nil {
		return result.Result{Provider: a.Name(), Err: *errp}
	}
	ip, err := netip.ParseAddr(resp.Data.IP)
	if err != nil {
		return result.Fail(a.Name(), result.ParseIP, resp.Data.IP)
	}

	r := result.Ok(a.Name(), ip)
	if resp.Data.Connection.Asn != 0 {
		r.AutonomousSystem = &result.AS{Number: uint32(resp.Data.Connection.Asn), Name: resp.Data.Connection.Isp}
	}
	lat, lon := sanitize.LatLon(fmt.Sprintf("%v", resp.Data.Location.Latitude), fmt.Sprintf("%v", resp.Data.Location.Longitude))
	var coords *result.Coordinates
	if lat != nil && lon != nil {
		coords = &result.Coordinates{Lat: *lat, Lon: *lon}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.Data.Location.Country.Name),
		Province:    sanitize.String(resp.Data.Location.Region.Name),
		City:        sanitize.String(resp.Data.Location.City.Name),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.Data.Timezone.ID),
	}

	var tags []result.RiskTag
	if resp.Data.Security.IsTor {
		tags = append(tags, result.RiskTag{Kind: result.Tor})
	}
	if resp.Data.Security.IsProxy || resp.Data.Security.IsVpn {
		tags = append(tags, result.RiskTag{Kind: result.Proxy})
	}
	if resp.Data.Security.IsDatacenter {
		tags = append(tags, result.RiskTag{Kind: result.Hosting})
	}
	if resp.Data.Security.IsIcloudRelay {
		tags = append(tags, result.RiskTag{Kind: result.Other, Label: "iCloud Relay"})
	}
	score := resp.Data.Security.ThreatScore
	r.Risk = &result.Risk{Score: &score, Tags: tags}
	return r
}
