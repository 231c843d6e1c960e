package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestProviderClient_CreateCheckoutSession(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotParams CheckoutParams
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotParams); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example.com/c/sess_1"})
	}))
	defer server.Close()

	client := NewProviderClient(server.URL, time.Second)
	url, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{
		OrganizationID: "org1",
		PriceID:        "price_growth_monthly",
		SuccessURL:     "https://app.example.com/ok",
		CancelURL:      "https://app.example.com/no",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://pay.example.com/c/sess_1" {
		t.Fatalf("unexpected session url %q", url)
	}
	if gotPath != "/checkout/sessions" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotParams.PriceID != "price_growth_monthly" || gotParams.OrganizationID != "org1" {
		t.Fatalf("unexpected request payload: %+v", gotParams)
	}
}

func TestProviderClient_CreatePortalSession(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/portal/sessions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example.com/p/sess_2"})
	}))
	defer server.Close()

	client := NewProviderClient(server.URL, time.Second)
	url, err := client.CreatePortalSession(context.Background(), PortalParams{OrganizationID: "org1", ReturnURL: "https://app.example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://pay.example.com/p/sess_2" {
		t.Fatalf("unexpected session url %q", url)
	}
}

func TestProviderClient_GatewayError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "price not found", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewProviderClient(server.URL, time.Second)
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{})
	if err == nil {
		t.Fatalf("expected error for gateway failure")
	}
	if !strings.Contains(err.Error(), "status=422") || !strings.Contains(err.Error(), "price not found") {
		t.Fatalf("error should carry status and body, got %v", err)
	}
}

func TestProviderClient_Unconfigured(t *testing.T) {
	t.Parallel()

	client := NewProviderClient("", time.Second)
	if client.Configured() {
		t.Fatalf("empty endpoint must report unconfigured")
	}
	if _, err := client.CreatePortalSession(context.Background(), PortalParams{}); err == nil {
		t.Fatalf("expected error for unconfigured client")
	}
}

func TestProviderClient_EmptySessionURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"url": ""})
	}))
	defer server.Close()

	client := NewProviderClient(server.URL, time.Second)
	if _, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{}); err == nil {
		t.Fatalf("expected error for empty session url")
	}
}
