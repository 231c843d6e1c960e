package application

import (
	"context"
	"fmt"
	"strings"

	publicapp "github.com/assessly-hq/assessly-services/api/internal/public/application"
	publicdomain "github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

type contactService struct {
	repo ContactRepository
}

// NewContactService builds the operator contact-inbox use-case.
func NewContactService(repo ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) List(ctx context.Context, filter ContactFilter, paging Paging) ([]publicdomain.ContactMessage, error) {
	return s.repo.Find(ctx, filter, paging)
}

func (s *contactService) MarkStatus(ctx context.Context, id, status string) (*publicdomain.ContactMessage, error) {
	trimmed := strings.TrimSpace(strings.ToLower(status))
	switch publicdomain.ContactStatus(trimmed) {
	case publicdomain.ContactNew, publicdomain.ContactHandled:
	default:
		return nil, fmt.Errorf("%w: invalid contact status: %s", publicapp.ErrInvalidInput, status)
	}
	return s.repo.UpdateStatus(ctx, id, publicdomain.ContactStatus(trimmed))
}
