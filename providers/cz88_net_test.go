package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/example/ipfan/result"
)

func TestCz88NetInvertsTrustToRisk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"success":true,"data":{"ip":"1.2.3.4","country":"US","isp":"Amazon","score":"90","locations":[{"latitude":"1.1","longitude":"2.2"}]}}`))
	}))
	defer srv.Close()

	orig := cz88NetOverrideURL
	defer func() { cz88NetOverrideURL = orig }()
	cz88NetOverrideURL = srv.URL

	a := &Cz88Net{}
	target := netip.MustParseAddr("1.2.3.4")
	results := a.Check(context.Background(), &target)
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("Check() = %+v", results)
	}
	if results[0].Risk == nil || *results[0].Risk.Score != 10 {
		t.Fatalf("Risk.Score = %v, want 10 (100 - trust 90)", results[0].Risk)
	}
}

func TestCz88NetClampsTrustAboveHundred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"success":true,"data":{"ip":"1.2.3.4","country":"US","score":"150"}}`))
	}))
	defer srv.Close()

	orig := cz88NetOverrideURL
	defer func() { cz88NetOverrideURL = orig }()
	cz88NetOverrideURL = srv.URL

	a := &Cz88Net{}
	target := netip.MustParseAddr("1.2.3.4")
	results := a.Check(context.Background(), &target)
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("Check() = %+v", results)
	}
	if results[0].Risk == nil || *results[0].Risk.Score != 100 {
		t.Fatalf("Risk.Score = %v, want 100 (clamped)", results[0].Risk)
	}
}

func TestCz88NetLocalLookupNotSupported(t *testing.T) {
	a := &Cz88Net{}
	results := a.Check(context.Background(), nil)
	if len(results) != 1 || results[0].Success || results[0].Err.Tag != result.NotSupported {
		t.Fatalf("Check(nil) = %+v, want NotSupported failure", results)
	}
}
