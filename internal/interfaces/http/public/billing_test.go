package public

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/assessly-hq/assessly-services/api/internal/billing"
)

type captureBillingRepo struct {
	gotOrgID string
	gotState billing.SubscriptionState
	matched  int64
}

func (r *captureBillingRepo) UpdateSubscription(_ context.Context, organizationID string, state billing.SubscriptionState) (int64, error) {
	r.gotOrgID = organizationID
	r.gotState = state
	return r.matched, nil
}

const webhookSecret = "whsec_test"

func webhookBody(orgID string) []byte {
	payload := map[string]any{
		"id":                 "sub_123",
		"status":             "active",
		"current_period_end": 1767225600,
		"items": map[string]any{
			"data": []map[string]any{
				{"price": map[string]string{"id": "price_growth_monthly"}},
			},
		},
		"metadata": map[string]string{"organization_id": orgID},
	}
	body, _ := json.Marshal(payload)
	return body
}

func newWebhookRouter(repo *captureBillingRepo) http.Handler {
	return newTestRouter(Config{
		BillingSyncer: billing.NewSyncer(repo, zap.NewNop()),
		WebhookSecret: []byte(webhookSecret),
	})
}

func TestBillingWebhook(t *testing.T) {
	t.Parallel()

	repo := &captureBillingRepo{matched: 1}
	router := newWebhookRouter(repo)

	body := webhookBody("org-1")
	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(body))
	req.Header.Set("X-Billing-Signature", billing.Sign(body, []byte(webhookSecret)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.gotOrgID != "org-1" {
		t.Fatalf("sync not applied, got org %q", repo.gotOrgID)
	}
	if repo.gotState.Plan != "Growth" || repo.gotState.Status != "active" || repo.gotState.SubscriptionID != "sub_123" {
		t.Fatalf("unexpected state %+v", repo.gotState)
	}
}

func TestBillingWebhook_BadSignature(t *testing.T) {
	t.Parallel()

	repo := &captureBillingRepo{matched: 1}
	router := newWebhookRouter(repo)

	body := webhookBody("org-1")
	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(body))
	req.Header.Set("X-Billing-Signature", billing.Sign([]byte("other body"), []byte(webhookSecret)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if repo.gotOrgID != "" {
		t.Fatalf("sync must not run on bad signature")
	}
}

func TestBillingWebhook_MissingSignature(t *testing.T) {
	t.Parallel()

	router := newWebhookRouter(&captureBillingRepo{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(webhookBody("org-1"))))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBillingWebhook_MissingOrganization(t *testing.T) {
	t.Parallel()

	router := newWebhookRouter(&captureBillingRepo{})

	body := webhookBody("")
	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(body))
	req.Header.Set("X-Billing-Signature", billing.Sign(body, []byte(webhookSecret)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBillingCheckoutEndpoint(t *testing.T) {
	t.Parallel()

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var params billing.CheckoutParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			t.Errorf("decode checkout params: %v", err)
		}
		if params.OrganizationID != "org-1" || params.PriceID != "price_growth_monthly" {
			t.Errorf("unexpected params %+v", params)
		}
		if !strings.HasSuffix(params.SuccessURL, "/billing?checkout=success") {
			t.Errorf("unexpected success url %q", params.SuccessURL)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example.com/c/sess_1"})
	}))
	defer gateway.Close()

	router := newTestRouter(Config{
		BillingClient: billing.NewProviderClient(gateway.URL, time.Second),
		DashboardURL:  "https://app.assessly.app",
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/billing/checkout", strings.NewReader(`{"priceId":"price_growth_monthly"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.URL != "https://pay.example.com/c/sess_1" {
		t.Fatalf("unexpected session url %q", got.URL)
	}
}

func TestBillingCheckoutEndpoint_MissingPrice(t *testing.T) {
	t.Parallel()

	router := newTestRouter(Config{
		BillingClient: billing.NewProviderClient("https://billing.example.com", time.Second),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/billing/checkout", strings.NewReader(`{"priceId":"  "}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBillingCheckoutEndpoint_Unconfigured(t *testing.T) {
	t.Parallel()

	router := newTestRouter(Config{
		BillingClient: billing.NewProviderClient("", time.Second),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/billing/checkout", strings.NewReader(`{"priceId":"price_growth_monthly"}`)))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestBillingPortalEndpoint_GatewayFailure(t *testing.T) {
	t.Parallel()

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer gateway.Close()

	router := newTestRouter(Config{
		BillingClient: billing.NewProviderClient(gateway.URL, time.Second),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/billing/portal", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}
