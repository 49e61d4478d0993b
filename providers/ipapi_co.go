package providers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// IPAPICo queries ipapi.co, which reports ASN and organization name as two
// separate fields instead of one combined "AS1234 Name" string.
type IPAPICo struct{}

func (a *IPAPICo) Name() string { return "ipapi.co" }

type ipAPICoResp struct {
	IP          string `json:"ip"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
	CountryName string `json:"country_name"`
	Region      string `json:"region"`
	City        string `json:"city"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	Timezone    string `json:"timezone"`
	Asn         string `json:"asn"`
	Org         string `json:"org"`
}

func (a *IPAPICo) Check(ctx context.Context, target *netip.Addr) []result.Result {
	path := ""
	if target != nil {
		path = target.String() + "/"
	}
	url := fmt.Sprintf("https://ipapi.co/%sjson/", path)

	var resp ipAPICoResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	if resp.Error {
		return single(result.Fail(a.Name(), result.Request, resp.Reason))
	}
	ip, err := netip.ParseAddr(resp.IP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.IP))
	}

	r := result.Ok(a.Name(), ip)
	if num, _, ok := sanitize.ASN(resp.Asn); ok {
		r.AutonomousSystem = &result.AS{Number: num, Name: resp.Org}
	}
	lat, lon := sanitize.LatLon(resp.Latitude, resp.Longitude)
	var coords *result.Coordinates
	if lat != nil && lon != nil {
		coords = &result.Coordinates{Lat: *lat, Lon: *lon}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.CountryName),
		Province:    sanitize.String(resp.Region),
		City:        sanitize.String(resp.City),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.Timezone),
	}
	return single(r)
}
