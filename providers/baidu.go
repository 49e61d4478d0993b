package providers

import (
	"context"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// Baidu queries Baidu's local-IP lookup API, which signals success with a
// top-level status string of "0" and nests its payload in a data array.
// Local-only, IPv4-only.
type Baidu struct{}

func (a *Baidu) Name() string { return "Baidu" }

type baiduResp struct {
	Status string `json:"status"`
	Data   []struct {
		Location string `json:"location"`
		Origip   string `json:"origip"`
	} `json:"data"`
}

func (a *Baidu) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		return single(result.Fail(a.Name(), result.NotSupported, "arbitrary IP lookup is not supported"))
	}
	var resp baiduResp
	url := "https://opendata.baidu.com/api.php?query=&co=&resource_id=6006&oe=utf8"
	if errp := getJSON(ctx, httpclient.Get(httpclient.ForceV4), url, nil, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	if resp.Status != "0" || len(resp.Data) == 0 {
		return single(result.Fail(a.Name(), result.Request, "unexpected response shape"))
	}
	entry := resp.Data[0]
	ip, err := netip.ParseAddr(entry.Origip)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, entry.Origip))
	}
	r := result.Ok(a.Name(), ip)
	r.Region = &result.Region{City: sanitize.String(entry.Location)}
	return single(r)
}
