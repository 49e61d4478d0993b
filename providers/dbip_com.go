package providers

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// DBIPCom queries the free db-ip.com lookup API.
type DBIPCom struct{}

func (a *DBIPCom) Name() string { return "db-ip.com" }

type dbIPComResp struct {
	IPAddress   string `json:"ipAddress"`
	CountryName string `json:"countryName"`
	StateProv   string `json:"stateProv"`
	City        string `json:"city"`
	Error       string `json:"error"`
}

func (a *DBIPCom) Check(ctx context.Context, target *netip.Addr) []result.Result {
	path := "self"
	if target != nil {
		path = target.String()
	}
	url := fmt.Sprintf("https://api.db-ip.com/v2/free/%s", path)

	var resp dbIPComResp
	if errp := getJSON(ctx, httpclient.Get(httpclient.Default), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	if resp.Error != "" {
		return single(result.Fail(a.Name(), result.Request, resp.Error))
	}
	ip, err := netip.ParseAddr(resp.IPAddress)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.IPAddress))
	}

	r := result.Ok(a.Name(), ip)
	r.Region = &result.Region{
		Country:  sanitize.String(resp.CountryName),
		Province: sanitize.String(resp.StateProv),
		City:     sanitize.String(resp.City),
	}
	return single(r)
}
