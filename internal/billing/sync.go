package billing

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// SubscriptionPayload mirrors the provider's webhook subscription object.
// Only the fields the sync reads are modeled.
type SubscriptionPayload struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
	Items            struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
	Metadata struct {
		OrganizationID string `json:"organization_id"`
	} `json:"metadata"`
}

// SubscriptionState is the internal record written onto the organization
// document. Every field is overwritten on each sync, which is what makes
// duplicate webhook deliveries harmless.
type SubscriptionState struct {
	Plan           string
	Status         string
	SubscriptionID string
	PeriodEnd      *time.Time
}

// OrganizationBillingRepository updates the subscription fields of one
// organization and reports how many documents matched.
type OrganizationBillingRepository interface {
	UpdateSubscription(ctx context.Context, organizationID string, state SubscriptionState) (int64, error)
}

// ErrMissingOrganization is returned when a webhook payload carries no
// organization reference; the handler maps it to a 400.
var ErrMissingOrganization = errors.New("webhook payload has no organization id")

// Syncer reconciles provider webhook payloads into organization documents.
type Syncer struct {
	repo   OrganizationBillingRepository
	logger *zap.Logger
}

// NewSyncer builds a Syncer.
func NewSyncer(repo OrganizationBillingRepository, logger *zap.Logger) *Syncer {
	return &Syncer{repo: repo, logger: logger}
}

// Apply maps the payload to a SubscriptionState and upserts it onto the
// organization. An organization id with no matching document is logged and
// reported as success: replayed webhooks for deleted tenants must not
// poison the provider's retry queue.
func (s *Syncer) Apply(ctx context.Context, payload SubscriptionPayload) error {
	orgID := payload.Metadata.OrganizationID
	if orgID == "" {
		return ErrMissingOrganization
	}

	priceID := ""
	if len(payload.Items.Data) > 0 {
		priceID = payload.Items.Data[0].Price.ID
	}

	state := SubscriptionState{
		Plan:           ResolvePlan(priceID),
		Status:         payload.Status,
		SubscriptionID: payload.ID,
	}
	if payload.CurrentPeriodEnd > 0 {
		periodEnd := time.Unix(payload.CurrentPeriodEnd, 0).UTC()
		state.PeriodEnd = &periodEnd
	}

	matched, err := s.repo.UpdateSubscription(ctx, orgID, state)
	if err != nil {
		return err
	}
	if matched == 0 && s.logger != nil {
		s.logger.Warn("subscription sync matched no organization",
			zap.String("organizationId", orgID),
			zap.String("subscriptionId", payload.ID),
		)
	}
	return nil
}
