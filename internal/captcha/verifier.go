package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Verifier checks contact-form CAPTCHA tokens against the provider's verify
// endpoint. An unconfigured verifier accepts everything, which keeps local
// development free of CAPTCHA keys.
type Verifier struct {
	endpoint   string
	secret     string
	httpClient *http.Client
}

// New builds a Verifier.
func New(endpoint, secret string, timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Verifier{
		endpoint:   strings.TrimSpace(endpoint),
		secret:     strings.TrimSpace(secret),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether verification is configured.
func (v *Verifier) Enabled() bool {
	return v != nil && v.endpoint != "" && v.secret != ""
}

// Verify posts the client token to the provider and returns whether it
// passed. Network or decode errors are returned; the caller decides whether
// to fail open or closed.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if !v.Enabled() {
		return true, nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := v.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verify request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return false, fmt.Errorf("captcha verify error: status=%d", res.StatusCode)
	}

	var verdict struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(res.Body).Decode(&verdict); err != nil {
		return false, fmt.Errorf("decode captcha response: %w", err)
	}
	return verdict.Success, nil
}
