package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"strconv"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// RealIPCc queries realip.cc. The API reports no risk signal at all, so
// Risk is always left nil for this provider.
type RealIPCc struct{}

func (a *RealIPCc) Name() string { return "realip.cc" }

const realIPCcLocalURL = "https://realip.cc/json"
const realIPCcSpecificURL = "https://realip.cc/"

type realIPCcResp struct {
	IP        string   `json:"ip"`
	City      string   `json:"city"`
	Province  string   `json:"province"`
	Country   string   `json:"country"`
	ISP       string   `json:"isp"`
	TimeZone  string   `json:"time_zone"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (a *RealIPCc) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		url := fmt.Sprintf("%s?ip=%s", realIPCcSpecificURL, target.String())
		return single(a.fetch(ctx, httpclient.Get(httpclient.Default), url))
	}

	v4, v6 := concurrent2(
		func() result.Result { return a.fetch(ctx, httpclient.Get(httpclient.ForceV4), realIPCcLocalURL) },
		func() result.Result { return a.fetch(ctx, httpclient.Get(httpclient.ForceV6), realIPCcLocalURL) },
	)
	return dedupeByIP([]result.Result{v4, v6})
}

func (a *RealIPCc) fetch(ctx context.Context, client *http.Client, url string) result.Result {
	var resp realIPCcResp
	if errp := getJSON(ctx, client, url, map[string]string{"Accept": "application/json"}, &resp); errp != nil {
		return result.Result{Provider: a.Name(), Err: *errp}
	}
	ip, err := netip.ParseAddr(resp.IP)
	if err != nil {
		return result.Fail(a.Name(), result.ParseIP, resp.IP)
	}

	r := result.Ok(a.Name(), ip)
	if name := sanitize.String(resp.ISP); name != nil {
		r.AutonomousSystem = &result.AS{Name: *name}
	}
	var coords *result.Coordinates
	if resp.Latitude != nil && resp.Longitude != nil {
		coords = &result.Coordinates{
			Lat: strconv.FormatFloat(*resp.Latitude, 'f', -1, 64),
			Lon: strconv.FormatFloat(*resp.Longitude, 'f', -1, 64),
		}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.Country),
		Province:    sanitize.String(resp.Province),
		City:        sanitize.String(resp.City),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.TimeZone),
	}
	return r
}
