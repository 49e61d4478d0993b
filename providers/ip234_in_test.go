package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIP234InReportsRiskScoreAtFaceValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ip":"1.2.3.4","country":"US","city":"Ashburn","isp":"Amazon","risk":{"score":90}}`))
	}))
	defer srv.Close()

	orig := ip234InOverrideURL
	defer func() { ip234InOverrideURL = orig }()
	ip234InOverrideURL = srv.URL

	a := &IP234In{}
	results := a.Check(context.Background(), nil)
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("Check() = %+v", results)
	}
	if results[0].Risk == nil || *results[0].Risk.Score != 90 {
		t.Fatalf("Risk.Score = %v, want 90 (reported as-is)", results[0].Risk)
	}
}
