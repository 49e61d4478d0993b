// Package registry builds the fixed, ordered list of provider adapters the
// dispatcher fans a lookup out to.
package registry

import (
	"os"

	"github.com/example/ipfan/providers"
)

// Keys resolves the API keys adapters that need one should use. It is
// satisfied by *config.KeyStore; defined here as an interface so registry
// does not force every caller to construct a real KeyStore.
type Keys interface {
	Key(provider string) string
}

// All builds the full adapter roster in a fixed compile-time order. The
// table and JSON output list results in this order; the pipe-delimited
// stream delivers them in completion order. keys supplies API keys
// for the adapters that need one; a nil Keys still returns every adapter,
// with key-gated ones reporting NotSupported until configured.
func All(keys Keys) []providers.Adapter {
	key := func(name string) string {
		if keys == nil {
			return ""
		}
		return keys.Key(name)
	}

	return []providers.Adapter{
		&providers.IPAPICom{Key: key("ip-api.com")},
		&providers.IPWhoisApp{},
		&providers.FreeIPAPI{},
		&providers.IPAPICo{},
		&providers.IPDataCo{Key: key("ipdata.co")},
		&providers.IPInfoIO{Token: key("ipinfo.io")},
		&providers.GeopluginNet{},
		&providers.DBIPCom{},
		&providers.IPSb{},
		&providers.IPIPNet{},
		&providers.IPQueryIO{},
		&providers.MyIPLa{},
		&providers.MyIPWtf{},
		&providers.IP234In{},
		&providers.IP2LocationIO{Key: key("ip2location.io")},
		&providers.IPWhoIs{},
		&providers.IPGeolocationIO{Key: key("ipgeolocation.io")},
		&providers.HttpbinOrg{},
		&providers.ITDogCn{},
		&providers.Baidu{},
		&providers.QQCom{},
		&providers.Bilibili{},
		&providers.MaptilerCom{Key: key("maptiler.com")},
		&providers.IpbaseCom{Key: key("ipbase.com")},
		&providers.CloudflareTrace{},
		&providers.IPCheckingMaxmind{},
		&providers.IPLarkIPAPI{},
		&providers.RealIPCc{},
		&providers.Cz88Net{},
		&providers.MaxmindLocal{
			CityDBPath: os.Getenv("IPFAN_MAXMIND_CITY_DB"),
			ASNDBPath:  os.Getenv("IPFAN_MAXMIND_ASN_DB"),
		},
	}
}

// Named filters a roster down to the adapters whose Name() appears in
// names, preserving the roster's order. Unknown names are ignored. This
// supplements the engine's field-visibility flags with a provider-scoping
// filter of its own (--provider-only), which spec.md's flag set does not
// require but does not forbid either.
func Named(all []providers.Adapter, names []string) []providers.Adapter {
	if len(names) == 0 {
		return all
	}
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	out := make([]providers.Adapter, 0, len(names))
	for _, p := range all {
		if _, ok := want[p.Name()]; ok {
			out = append(out, p)
		}
	}
	return out
}
