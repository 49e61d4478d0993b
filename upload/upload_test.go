package upload

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPostReturnsDisabledErrorWithNoConfig(t *testing.T) {
	u := &Uploader{}
	if _, err := u.Post(context.Background(), "transcript"); err != ErrDisabled {
		t.Fatalf("Post() error = %v, want ErrDisabled", err)
	}
}

func TestPostReturnsComposedURLOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			t.Errorf("missing Authorization header")
		}
		w.Write([]byte("abc123"))
	}))
	defer srv.Close()

	u := &Uploader{BaseURL: srv.URL, Secret: "shh"}
	url, err := u.Post(context.Background(), "transcript contents")
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if want := srv.URL + "/abc123"; url != want {
		t.Fatalf("Post() = %q, want %q", url, want)
	}
}
