package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIPAPIComSuccessParsesASNAndTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","country":"Germany","regionName":"Hesse","city":"Frankfurt","lat":50.1,"lon":8.6,"timezone":"Europe/Berlin","isp":"Hetzner","as":"AS24940 Hetzner Online GmbH","query":"5.9.0.1","proxy":false,"hosting":true,"mobile":false}`))
	}))
	defer srv.Close()

	orig := ipapiComOverrideURL
	defer func() { ipapiComOverrideURL = orig }()
	ipapiComOverrideURL = srv.URL

	a := &IPAPICom{}
	results := a.Check(context.Background(), nil)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if !r.Success {
		t.Fatalf("Success = false, err = %v", r.Err)
	}
	if r.AutonomousSystem == nil || r.AutonomousSystem.Number != 24940 {
		t.Fatalf("AutonomousSystem = %+v, want ASN 24940", r.AutonomousSystem)
	}
	if r.Risk == nil || len(r.Risk.Tags) != 1 || r.Risk.Tags[0].Kind.String() != "Hosting" {
		t.Fatalf("Risk = %+v, want single Hosting tag", r.Risk)
	}
}

func TestIPAPIComFailureStatusBecomesRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"fail","message":"invalid query"}`))
	}))
	defer srv.Close()

	orig := ipapiComOverrideURL
	defer func() { ipapiComOverrideURL = orig }()
	ipapiComOverrideURL = srv.URL

	a := &IPAPICom{}
	results := a.Check(context.Background(), nil)
	if results[0].Success {
		t.Fatalf("Success = true, want false")
	}
	if !strings.Contains(results[0].Err.Message, "invalid query") {
		t.Fatalf("Err.Message = %q", results[0].Err.Message)
	}
}
