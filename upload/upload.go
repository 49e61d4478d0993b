// Package upload posts the full run transcript (rendered table plus
// captured logs) to the baked-in pastebin-style endpoint and returns a
// shareable URL. Disabled whenever buildinfo's upload settings are absent.
package upload

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/example/ipfan/buildinfo"
)

// ErrDisabled is returned by Post when no upload endpoint/secret was baked
// into the build. Callers treat it as a non-fatal, expected outcome.
var ErrDisabled = errors.New("upload disabled: no endpoint baked into this build")

// Uploader posts run transcripts to the configured endpoint.
type Uploader struct {
	// BaseURL and Secret override buildinfo's values, used by tests.
	BaseURL string
	Secret  string
}

// Post uploads transcript and returns the shareable URL.
func (u *Uploader) Post(ctx context.Context, transcript string) (string, error) {
	base, secret := u.BaseURL, u.Secret
	if base == "" {
		base = buildinfo.UploadURL
	}
	if secret == "" {
		secret = buildinfo.UploadSecret
	}
	if base == "" || secret == "" {
		return "", ErrDisabled
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/upload", strings.NewReader(transcript))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(secret)))
	req.Header.Set("Content-Type", "text/plain")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed: status %d", resp.StatusCode)
	}
	idBytes, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(string(idBytes))
	if id == "" {
		return "", fmt.Errorf("upload response did not include an id")
	}
	return fmt.Sprintf("%s/%s", base, id), nil
}
