package providers

import (
	"context"
	"net/netip"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
	"github.com/example/ipfan/sanitize"
)

// MyIPWtf queries myip.wtf, which rejects requests that do not carry a
// browser-like User-Agent and otherwise returns a bare opaque error page.
type MyIPWtf struct{}

func (a *MyIPWtf) Name() string { return "myip.wtf" }

type myIPWtfResp struct {
	YourFuckingIPAddress   string `json:"YourFuckingIPAddress"`
	YourFuckingLocation    string `json:"YourFuckingLocation"`
	YourFuckingISP         string `json:"YourFuckingISP"`
}

func (a *MyIPWtf) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		return single(result.Fail(a.Name(), result.NotSupported, "arbitrary IP lookup is not supported"))
	}
	headers := map[string]string{"User-Agent": httpclient.UserAgent()}
	var resp myIPWtfResp
	client := httpclient.Get(httpclient.Default)
	if errp := getJSON(ctx, client, "https://myip.wtf/json", headers, &resp); errp != nil {
		return single(result.Result{Provider: a.Name(), Err: *errp})
	}
	ip, err := netip.ParseAddr(resp.YourFuckingIPAddress)
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, resp.YourFuckingIPAddress))
	}
	r := result.Ok(a.Name(), ip)
	if isp := sanitize.String(resp.YourFuckingISP); isp != nil {
		r.AutonomousSystem = &result.AS{Name: *isp}
	}
	r.Region = &result.Region{
		City: sanitize.String(resp.YourFuckingLocation),
	}
	return single(r)
}
