package providers

import (
	"context"
	"encoding/json"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// GeopluginNet queries geoplugin.net's local-IP endpoint. It wraps its JSON
// in a geoplugin_(...) JSONP callback even though no callback parameter was
// requested, is IPv4-only, and does not support looking up an arbitrary IP.
type GeopluginNet struct{}

func (a *GeopluginNet) Name() string { return "geoplugin.net" }

// geopluginNetOverrideURL lets tests redirect requests to an httptest server.
var geopluginNetOverrideURL string

type geopluginNetResp struct {
	RequestIP    string `json:"geoplugin_request"`
	CountryName  string `json:"geoplugin_countryName"`
	RegionName   string `json:"geoplugin_regionName"`
	City         string `json:"geoplugin_city"`
	Latitude     string `json:"geoplugin_latitude"`
	Longitude    string `json:"geoplugin_longitude"`
	Timezone     string `json:"geoplugin_timezone"`
}

func (a *GeopluginNet) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		return single(result.Fail(a.Name(), result.NotSupported, "arbitrary IP lookup is not supported"))
	}

	url := "http://www.geoplugin.net/json.gp"
	if geopluginNetOverrideURL != "" {
		url = geopluginNetOverrideURL
	}
	client := httpclient.Get(httpclient.ForceV4)
	body, tag, msg := getBody(ctx, client, url, nil)
	if tag != result.None {
		return single(result.Result{Provider: a.Name(), Err: result.Error{Tag: tag, Message: msg}})
	}

	unwrapped := sanitize.StripJSONP(string(body))
	var resp geopluginNetResp
	if err := json.Unmarshal([]byte(unwrapped), &resp); err != nil {
		return single(result.Fail(a.Name(), result.JsonParse, err.Error()))
	}

	ip, err := netip.ParseAddr(resp.RequestIP)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.RequestIP))
	}

	r := result.Ok(a.Name(), ip)
	lat, lon := sanitize.LatLon(resp.Latitude, resp.Longitude)
	var coords *result.Coordinates
	if lat != nil && lon != nil {
		coords = &result.Coordinates{Lat: *lat, Lon: *lon}
	}
	r.Region = &result.Region{
		Country:     sanitize.String(resp.CountryName),
		Province:    sanitize.String(resp.RegionName),
		City:        sanitize.String(resp.City),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.Timezone),
	}
	return single(r)
}
