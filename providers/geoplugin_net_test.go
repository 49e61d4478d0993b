package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeopluginNetUnwrapsJSONPCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`geoplugin_(` +
			`{"geoplugin_request":"203.0.113.9","geoplugin_countryName":"Testland",` +
			`"geoplugin_city":"Testville","geoplugin_latitude":"1.23","geoplugin_longitude":"4.56"}` +
			`);`))
	}))
	defer srv.Close()

	orig := geopluginNetOverrideURL
	defer func() { geopluginNetOverrideURL = orig }()
	geopluginNetOverrideURL = srv.URL

	a := &GeopluginNet{}
	results := a.Check(context.Background(), nil)
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("Check() = %+v", results)
	}
	if results[0].IP.String() != "203.0.113.9" {
		t.Fatalf("IP = %v, want 203.0.113.9", results[0].IP)
	}
	if results[0].Region.Coordinates == nil || results[0].Region.Coordinates.Lat != "1.23" {
		t.Fatalf("Coordinates = %+v", results[0].Region.Coordinates)
	}
}

func TestGeopluginNetRejectsArbitraryTarget(t *testing.T) {
	ip := mustAddr("8.8.8.8")
	a := &GeopluginNet{}
	results := a.Check(context.Background(), &ip)
	if len(results) != 1 || results[0].Success {
		t.Fatalf("Check() with target = %+v, want single NotSupported failure", results)
	}
}
