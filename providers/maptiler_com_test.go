package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/ipfan/result"
)

func TestMaptilerComSynthesizesPlaceholderIPOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"country_name":"France","city":"Paris","latitude":48.85,"longitude":2.35,"timezone":"Europe/Paris"}`))
	}))
	defer srv.Close()

	orig := maptilerComOverrideURL
	defer func() { maptilerComOverrideURL = orig }()
	maptilerComOverrideURL = srv.URL

	a := &MaptilerCom{Key: "test-key"}
	results := a.Check(context.Background(), nil)

	foundPlaceholder := false
	for _, r := range results {
		if r.Success && r.IP != nil && r.IP.String() == "0.0.0.0" {
			foundPlaceholder = true
			if r.Region == nil || r.Region.City == nil || *r.Region.City != "Paris" {
				t.Fatalf("Region = %+v, want city Paris", r.Region)
			}
		}
	}
	if !foundPlaceholder {
		t.Fatalf("Check() = %+v, want at least one success with placeholder IP 0.0.0.0", results)
	}
}

func TestMaptilerComRequiresAPIKey(t *testing.T) {
	a := &MaptilerCom{}
	results := a.Check(context.Background(), nil)
	if len(results) != 1 || results[0].Success || results[0].Err.Tag != result.NotSupported {
		t.Fatalf("Check() without key = %+v, want single NotSupported failure", results)
	}
}
