package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/example/ipfan/httpclient"
	"github.com/example/ipfan/result"
)

// concurrent2 runs a and b on their own goroutines and returns both
// results once both have finished, so a slow or unreachable address
// family never adds its latency on top of the other's — matching the
// upstream's tokio::spawn-both-then-await-both shape for dual-stack
// local discovery.
func concurrent2(a, b func() result.Result) (result.Result, result.Result) {
	var ra, rb result.Result
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		ra = a()
	}()
	go func() {
		defer wg.Done()
		rb = b()
	}()
	wg.Wait()
	return ra, rb
}

// getJSON issues a GET against url using client, decoding the JSON body
// into target. It returns a classified result.Error on any failure so
// callers can turn it straight into a failed Result.
func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, target interface{}) *result.Error {
	body, errTag, msg := getBody(ctx, client, url, headers)
	if errTag != result.None {
		return &result.Error{Tag: errTag, Message: msg}
	}
	if err := json.Unmarshal(body, target); err != nil {
		return &result.Error{Tag: result.JsonParse, Message: err.Error()}
	}
	return nil
}

// getBody issues a GET and returns the raw response body, truncated to 1MB
// on success. Failures are classified the same way getJSON classifies them.
func getBody(ctx context.Context, client *http.Client, url string, headers map[string]string) (body []byte, tag result.ErrorTag, message string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, result.Request, err.Error()
	}
	req.Header.Set("User-Agent", httpclient.UserAgent())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, result.Request, err.Error()
	}
	defer resp.Body.Close()

	const maxBody = 1 << 20
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, result.Request, err.Error()
	}

	if resp.StatusCode != http.StatusOK {
		snippet := raw
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return nil, result.Request, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, snippet)
	}
	return raw, result.None, ""
}
