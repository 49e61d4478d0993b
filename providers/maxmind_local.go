package providers

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"sync"

	"github.com/oschwald/geoip2-golang"

	"github.com/example/ipfan/result"
)

// MaxmindLocal performs a fully offline GeoIP2/GeoLite2 lookup against
// local City and ASN database files, instead of calling any remote API.
// It is the one adapter in the roster with no network dependency at all;
// a database that fails to open is therefore reported as ClientCreate
// rather than Request.
//
// Target-only: without a target IP this adapter has no way to learn the
// caller's own address (it does not shell out to a discovery service —
// that would defeat the point of being the offline adapter), so it
// requires a target.
type MaxmindLocal struct {
	CityDBPath string
	ASNDBPath  string

	once    sync.Once
	cityDB  *geoip2.Reader
	asnDB   *geoip2.Reader
	openErr error
}

func (a *MaxmindLocal) Name() string { return "MaxMind (local)" }

func (a *MaxmindLocal) open() {
	a.once.Do(func() {
		if a.CityDBPath == "" || a.ASNDBPath == "" {
			a.openErr = fmt.Errorf("no local database paths configured")
			return
		}
		city, err := geoip2.Open(a.CityDBPath)
		if err != nil {
			a.openErr = fmt.Errorf("open city database: %w", err)
			return
		}
		asn, err := geoip2.Open(a.ASNDBPath)
		if err != nil {
			city.Close()
			a.openErr = fmt.Errorf("open asn database: %w", err)
			return
		}
		a.cityDB, a.asnDB = city, asn
	})
}

func (a *MaxmindLocal) Check(ctx context.Context, target *netip.Addr) []result.Result {
	if target == nil {
		return single(result.Fail(a.Name(), result.NotSupported, "local discovery requires a known target address"))
	}
	a.open()
	if a.openErr != nil {
		return single(result.Fail(a.Name(), result.ClientCreate, a.openErr.Error()))
	}

	netIP := net.ParseIP(target.String())
	city, err := a.cityDB.City(netIP)
	if err != nil {
		return single(result.Fail(a.Name(), result.Request, err.Error()))
	}
	asnRec, err := a.asnDB.ASN(netIP)
	if err != nil {
		return single(result.Fail(a.Name(), result.Request, err.Error()))
	}

	r := result.Ok(a.Name(), *target)
	if asnRec.AutonomousSystemNumber != 0 {
		r.AutonomousSystem = &result.AS{
			Number: asnRec.AutonomousSystemNumber,
			Name:   asnRec.AutonomousSystemOrganization,
		}
	}

	country := city.Country.Names["en"]
	var province string
	if len(city.Subdivisions) > 0 {
		province = city.Subdivisions[0].Names["en"]
	}
	cityName := city.City.Names["en"]
	var coords *result.Coordinates
	if city.Location.Latitude != 0 || city.Location.Longitude != 0 {
		coords = &result.Coordinates{
			Lat: fmt.Sprintf("%v", city.Location.Latitude),
			Lon: fmt.Sprintf("%v", city.Location.Longitude),
		}
	}
	tz := city.Location.TimeZone

	r.Region = &result.Region{
		Country:     strPtrOrNil(country),
		Province:    strPtrOrNil(province),
		City:        strPtrOrNil(cityName),
		Coordinates: coords,
		TimeZone:    strPtrOrNil(tz),
	}
	return single(r)
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
