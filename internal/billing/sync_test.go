package billing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeBillingRepo struct {
	matched int64
	err     error

	gotOrgID string
	gotState SubscriptionState
	calls    int
}

func (r *fakeBillingRepo) UpdateSubscription(_ context.Context, organizationID string, state SubscriptionState) (int64, error) {
	r.calls++
	r.gotOrgID = organizationID
	r.gotState = state
	return r.matched, r.err
}

func payloadFromJSON(t *testing.T, raw string) SubscriptionPayload {
	t.Helper()
	var payload SubscriptionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("failed to build payload: %v", err)
	}
	return payload
}

const samplePayload = `{
	"id": "sub_123",
	"status": "active",
	"current_period_end": 1767225600,
	"items": {"data": [{"price": {"id": "price_growth_monthly"}}]},
	"metadata": {"organization_id": "64f000000000000000000001"}
}`

func TestSyncer_Apply(t *testing.T) {
	t.Parallel()

	repo := &fakeBillingRepo{matched: 1}
	syncer := NewSyncer(repo, zap.NewNop())

	if err := syncer.Apply(context.Background(), payloadFromJSON(t, samplePayload)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.calls != 1 {
		t.Fatalf("expected exactly one update, got %d", repo.calls)
	}
	if repo.gotOrgID != "64f000000000000000000001" {
		t.Fatalf("unexpected organization id %q", repo.gotOrgID)
	}
	if repo.gotState.Plan != "Growth" {
		t.Fatalf("expected plan Growth, got %q", repo.gotState.Plan)
	}
	if repo.gotState.Status != "active" {
		t.Fatalf("expected status active, got %q", repo.gotState.Status)
	}
	if repo.gotState.SubscriptionID != "sub_123" {
		t.Fatalf("expected subscription id sub_123, got %q", repo.gotState.SubscriptionID)
	}
	wantEnd := time.Unix(1767225600, 0).UTC()
	if repo.gotState.PeriodEnd == nil || !repo.gotState.PeriodEnd.Equal(wantEnd) {
		t.Fatalf("expected period end %v, got %v", wantEnd, repo.gotState.PeriodEnd)
	}
}

func TestSyncer_Apply_UnknownPrice(t *testing.T) {
	t.Parallel()

	repo := &fakeBillingRepo{matched: 1}
	syncer := NewSyncer(repo, zap.NewNop())

	payload := payloadFromJSON(t, samplePayload)
	payload.Items.Data[0].Price.ID = "price_from_the_future"

	if err := syncer.Apply(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotState.Plan != PlanUnknown {
		t.Fatalf("expected plan %q, got %q", PlanUnknown, repo.gotState.Plan)
	}
}

func TestSyncer_Apply_ZeroMatchIsNotAnError(t *testing.T) {
	t.Parallel()

	repo := &fakeBillingRepo{matched: 0}
	syncer := NewSyncer(repo, zap.NewNop())

	if err := syncer.Apply(context.Background(), payloadFromJSON(t, samplePayload)); err != nil {
		t.Fatalf("zero-match sync must not error, got %v", err)
	}
}

func TestSyncer_Apply_MissingOrganization(t *testing.T) {
	t.Parallel()

	repo := &fakeBillingRepo{}
	syncer := NewSyncer(repo, zap.NewNop())

	payload := payloadFromJSON(t, samplePayload)
	payload.Metadata.OrganizationID = ""

	err := syncer.Apply(context.Background(), payload)
	if !errors.Is(err, ErrMissingOrganization) {
		t.Fatalf("expected ErrMissingOrganization, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("repository must not be touched, got %d calls", repo.calls)
	}
}

func TestSyncer_Apply_Idempotent(t *testing.T) {
	t.Parallel()

	repo := &fakeBillingRepo{matched: 1}
	syncer := NewSyncer(repo, zap.NewNop())
	payload := payloadFromJSON(t, samplePayload)

	if err := syncer.Apply(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := repo.gotState

	if err := syncer.Apply(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error on replay: %v", err)
	}
	if repo.gotState.Plan != first.Plan || repo.gotState.Status != first.Status || repo.gotState.SubscriptionID != first.SubscriptionID {
		t.Fatalf("replayed delivery must write the same state: %+v vs %+v", first, repo.gotState)
	}
}

func TestSyncer_Apply_NoPeriodEnd(t *testing.T) {
	t.Parallel()

	repo := &fakeBillingRepo{matched: 1}
	syncer := NewSyncer(repo, zap.NewNop())

	payload := payloadFromJSON(t, samplePayload)
	payload.CurrentPeriodEnd = 0

	if err := syncer.Apply(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotState.PeriodEnd != nil {
		t.Fatalf("expected nil period end, got %v", repo.gotState.PeriodEnd)
	}
}
