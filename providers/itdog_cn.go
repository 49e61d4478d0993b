package providers

import (
	"context"
	"net/netip"
	"regexp"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
)

// ITDogCn scrapes the embedded `var ip = "...";` assignment out of
// itdog.cn's HTML landing page. Local-only, IPv4-only: the site has no
// JSON API and no IPv6 presence.
type ITDogCn struct{}

func (a *ITDogCn) Name() string { return "ITDog.cn" }

var itdogIPPattern = regexp.MustCompile(`var\s+ip\s*=\s*"([^"]+)"`)

func (a *ITDogCn) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target != nil {
		return single(result.Fail(a.Name(), result.NotSupported, "arbitrary IP lookup is not supported"))
	}
	body, tag, msg := getBody(ctx, httpclient.Get(httpclient.ForceV4), "https://www.itdog.cn/ip/", nil)
	if tag != result.None {
		return single(result.Result{Provider: a.Name(), Err: result.Error{Tag: tag, Message: msg}})
	}

	m := itdogIPPattern.FindSubmatch(body)
	if m == nil {
		return single(result.Fail(a.Name(), result.ParseIP, "ip assignment not found in page"))
	}
	ip, err := netip.ParseAddr(string(m[1]))
	if err != nil {
		return single(result.Fail(a.Name(), result.ParseIP, string(m[1])))
	}
	return single(result.Ok(a.Name(), ip))
}
