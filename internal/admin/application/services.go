package application

import (
	"context"

	admindomain "github.com/assessly-hq/assessly-services/api/internal/admin/domain"
	publicdomain "github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

// StatsRepository aggregates platform counters from storage.
type StatsRepository interface {
	Collect(ctx context.Context) (*admindomain.Stats, error)
}

// ContactFilter narrows the contact inbox listing.
type ContactFilter struct {
	Status string
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// ContactRepository covers operator access to the contact inbox.
type ContactRepository interface {
	Find(ctx context.Context, filter ContactFilter, paging Paging) ([]publicdomain.ContactMessage, error)
	UpdateStatus(ctx context.Context, id string, status publicdomain.ContactStatus) (*publicdomain.ContactMessage, error)
}

// StatsService exposes the operator stats snapshot.
type StatsService interface {
	Snapshot(ctx context.Context) (*admindomain.Stats, error)
}

// ContactService exposes operator contact-inbox triage.
type ContactService interface {
	List(ctx context.Context, filter ContactFilter, paging Paging) ([]publicdomain.ContactMessage, error)
	MarkStatus(ctx context.Context, id, status string) (*publicdomain.ContactMessage, error)
}
