package providers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IPWhoIs queries ipwho.is, a flat-JSON free provider that signals failure
// with a top-level "success" boolean plus a message.
type IPWhoIs struct{}

func (a *IPWhoIs) Name() string { return "ipwho.is" }

type ipWhoIsResp struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	IP        string  `json:"ip"`
	Country   string  `json:"country"`
	Region    string  `json:"region"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  struct {
		ID string `json:"id"`
	} `json:"timezone"`
	Connection struct {
		ASN uint32 `json:"asn"`
		ISP string `json:"isp"`
	} `json:"connection"`
}

func (a *IPWhoIs) Check(ctx context.Context, target *netip.Addr) []result.Result {
	path := ""
	if target != nil {
		path = target.String()
	}
	url := fmt.Sprintf("https://ipwho.is/%s", path)

	var resp ipWhoIsResp
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
	if resp.Connection.ASN != 0 {
		r.AutonomousSystem = &result.AS{Number: resp.Connection.ASN, Name: resp.Connection.ISP}
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
		TimeZone:    sanitize.String(resp.Timezone.ID),
	}
	return single(r)
}
