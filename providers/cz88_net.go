package providers

import (
	"context"
	"fmt"
	"net/netip"
	"strconv"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// Cz88Net queries update.cz88.net, which reports a trust score rather than
// a risk score; this is the one adapter in the roster that performs the
// trust-to-risk inversion (risk = 100 - trust), since the rest of the
// roster's "risk-shaped" fields already report risk directly. Arbitrary-IP
// only: the API has no local-discovery mode.
type Cz88Net struct{}

func (a *Cz88Net) Name() string { return "Cz88.net" }

// cz88NetOverrideURL lets tests redirect requests to an httptest server.
var cz88NetOverrideURL string

type cz88NetResp struct {
	Code    int    `json:"code"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *struct {
		IP        string `json:"ip"`
		Country   string `json:"country"`
		Province  string `json:"province"`
		City      string `json:"city"`
		ISP       string `json:"isp"`
		ASN       string `json:"asn"`
		Company   string `json:"company"`
		Locations []struct {
			Latitude  string `json:"latitude"`
			Longitude string `json:"longitude"`
		} `json:"locations"`
		Score              string `json:"score"`
		VPN                bool   `json:"vpn"`
		Tor                bool   `json:"tor"`
		Proxy              bool   `json:"proxy"`
		IcloudPrivateRelay bool   `json:"icloudPrivateRelay"`
		NetWorkType        string `json:"netWorkType"`
	} `json:"data"`
}

func (a *Cz88Net) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target == nil {
		return single(result.Fail(a.Name(), result.NotSupported, "local IP lookup is not supported"))
	}

	base := "https://update.cz88.net/api/cz88/ip/base"
	if cz88NetOverrideURL != "" {
		base = cz88NetOverrideURL
	}
	url := fmt.Sprintf("%s?ip=%s", base, target.String())
	var resp cz88NetResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	if !(resp.Code == 200 && resp.Success) {
		msg := resp.Message
		if msg == "" {
			msg = "API indicated failure"
		}
		return single(result.Fail(a.Name(), result.Request, msg))
	}
	if resp.Data == nil {
		return single(result.Fail(a.Name(), result.JsonParse, "API success but data field is missing"))
	}
	data := resp.Data

	ip, err := netip.ParseAddr(data.IP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, data.IP))
	}

	r := result.Ok(a.Name(), ip)
	name := sanitize.String(data.ISP)
	if name == nil {
		name = sanitize.String(data.Company)
	}
	if name == nil {
		name = sanitize.String(data.ASN)
	}
	if name != nil {
		r.AutonomousSystem = &result.AS{Name: *name}
	}

	var coords *result.Coordinates
	if len(data.Locations) > 0 {
		lat, lon := sanitize.LatLon(data.Locations[0].Latitude, data.Locations[0].Longitude)
		if lat != nil && lon != nil {
			coords = &result.Coordinates{Lat: *lat, Lon: *lon}
		}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(data.Country),
		Province:    sanitize.String(data.Province),
		City:        sanitize.String(data.City),
		Coordinates: coords,
	}

	if trust, err := strconv.ParseUint(data.Score, 10, 16); err == nil {
		score := uint8(100)
		if trust <= 100 {
			score = uint8(100 - trust)
		}
		var tags []result.RiskTag
		if data.VPN || data.Proxy {
			tags = append(tags, result.RiskTag{Kind: result.Proxy})
		}
		if data.Tor {
			tags = append(tags, result.RiskTag{Kind: result.Tor})
		}
		if data.IcloudPrivateRelay {
			tags = append(tags, result.RiskTag{Kind: result.Other, Label: "iCloud Relay"})
		}
		if netType := sanitize.String(data.NetWorkType); netType != nil && *netType == "数据中心" {
			tags = append(tags, result.RiskTag{Kind: result.Hosting})
		}
		r.Risk = &result.Risk{Score: &score, Tags: tags}
	}

	return single(r)
}
