package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ProviderClient calls the payment provider's session endpoints. The
// provider is a black box behind a gateway URL; this client only creates
// hosted checkout and billing-portal sessions and hands the URLs back to
// the dashboard.
type ProviderClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewProviderClient builds a client for the billing gateway.
func NewProviderClient(endpoint string, timeout time.Duration) *ProviderClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ProviderClient{
		endpoint:   strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether a gateway endpoint is set. Without one the
// billing endpoints return 503 instead of dialing nowhere.
func (c *ProviderClient) Configured() bool {
	return c != nil && c.endpoint != ""
}

// CheckoutParams describes a checkout session request.
type CheckoutParams struct {
	OrganizationID string `json:"organization_id"`
	PriceID        string `json:"price_id"`
	SuccessURL     string `json:"success_url"`
	CancelURL      string `json:"cancel_url"`
}

// CreateCheckoutSession asks the provider for a hosted checkout URL.
func (c *ProviderClient) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error) {
	return c.createSession(ctx, "/checkout/sessions", params)
}

// PortalParams describes a billing-portal session request.
type PortalParams struct {
	OrganizationID string `json:"organization_id"`
	ReturnURL      string `json:"return_url"`
}

// CreatePortalSession asks the provider for a hosted billing-portal URL.
func (c *ProviderClient) CreatePortalSession(ctx context.Context, params PortalParams) (string, error) {
	return c.createSession(ctx, "/portal/sessions", params)
}

func (c *ProviderClient) createSession(ctx context.Context, path string, payload any) (string, error) {
	if !c.Configured() {
		return "", errors.New("billing gateway is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("billing gateway request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return "", fmt.Errorf("billing gateway error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}

	var session struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("decode session response: %w", err)
	}
	if strings.TrimSpace(session.URL) == "" {
		return "", errors.New("billing gateway returned no session url")
	}
	return session.URL, nil
}
