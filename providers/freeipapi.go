package providers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// FreeIPAPI queries freeipapi.com, which reports no AS/ISP information and
// carries lat/lon as native floats rather than strings.
type FreeIPAPI struct{}

func (a *FreeIPAPI) Name() string { return "freeipapi.com" }

type freeIPAPIResp struct {
	IPAddress   string  `json:"ipAddress"`
	CountryName string  `json:"countryName"`
	RegionName  string  `json:"regionName"`
	CityName    string  `json:"cityName"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TimeZone    string  `json:"timeZone"`
}

func (a *FreeIPAPI) Check(ctx context.Context, target *netip.Addr) []result.Result {
	path := ""
	if target != nil {
		path = target.String()
	}
	url := fmt.Sprintf("https://freeipapi.com/api/json/%s", path)

	var resp freeIPAPIResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	ip, err := netip.ParseAddr(resp.IPAddress)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.IPAddress))
	}

	r := result.Ok(a.Name(), ip)
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
	return single(r)
}
