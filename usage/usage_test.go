package usage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchParsesTodayAllPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Total views: 42 / 13370"))
	}))
	defer srv.Close()

	c := &Counter{Endpoint: srv.URL}
	today, all, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if today != 42 || all != 13370 {
		t.Fatalf("Fetch() = (%d, %d), want (42, 13370)", today, all)
	}
}

func TestFetchReturnsErrorOnUnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a counter"))
	}))
	defer srv.Close()

	c := &Counter{Endpoint: srv.URL}
	if _, _, err := c.Fetch(context.Background()); err == nil {
		t.Fatalf("Fetch() error = nil, want error")
	}
}
