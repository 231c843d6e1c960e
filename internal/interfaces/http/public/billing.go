package public

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/assessly-hq/assessly-services/api/internal/billing"
	"github.com/assessly-hq/assessly-services/api/internal/interfaces/http/common"
)

// signatureHeader carries the HMAC the provider computes over the raw
// webhook body.
const signatureHeader = "X-Billing-Signature"

const maxWebhookBody = 1 << 20

func (h *Handler) billingCheckoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		user, ok := h.requireUser(w, r)
		if !ok {
			return
		}
		if !h.billingClient.Configured() {
			common.WriteError(h.logger, w, http.StatusServiceUnavailable, "billing is not configured")
			return
		}

		var req checkoutRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.PriceID) == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "priceId is required")
			return
		}

		url, err := h.billingClient.CreateCheckoutSession(ctx, billing.CheckoutParams{
			OrganizationID: user.OrganizationID,
			PriceID:        req.PriceID,
			SuccessURL:     h.dashboardURL + "/billing?checkout=success",
			CancelURL:      h.dashboardURL + "/billing?checkout=cancelled",
		})
		if err != nil {
			h.logger.Error("checkout session failed", zap.String("organizationId", user.OrganizationID), zap.Error(err))
			common.WriteError(h.logger, w, http.StatusBadGateway, "failed to create checkout session")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, sessionResponse{URL: url})
	}
}

func (h *Handler) billingPortalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		user, ok := h.requireUser(w, r)
		if !ok {
			return
		}
		if !h.billingClient.Configured() {
			common.WriteError(h.logger, w, http.StatusServiceUnavailable, "billing is not configured")
			return
		}

		url, err := h.billingClient.CreatePortalSession(ctx, billing.PortalParams{
			OrganizationID: user.OrganizationID,
			ReturnURL:      h.dashboardURL + "/billing",
		})
		if err != nil {
			h.logger.Error("portal session failed", zap.String("organizationId", user.OrganizationID), zap.Error(err))
			common.WriteError(h.logger, w, http.StatusBadGateway, "failed to create portal session")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, sessionResponse{URL: url})
	}
}

// billingWebhookHandler receives subscription events from the provider.
// Authenticity rests entirely on the body HMAC; there is no bearer token.
func (h *Handler) billingWebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "failed to read body")
			return
		}

		if !billing.VerifySignature(body, r.Header.Get(signatureHeader), h.webhookSecret) {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "invalid signature")
			return
		}

		var payload billing.SubscriptionPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		if err := h.billingSyncer.Apply(ctx, payload); err != nil {
			if errors.Is(err, billing.ErrMissingOrganization) {
				common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
				return
			}
			h.logger.Error("subscription sync failed", zap.String("subscriptionId", payload.ID), zap.Error(err))
			common.WriteError(h.logger, w, http.StatusInternalServerError, "subscription sync failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
