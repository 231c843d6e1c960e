package application

import (
	"context"
	"fmt"

	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
	"github.com/assessly-hq/assessly-services/api/internal/scoring"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

type fakeOrgRepo struct {
	orgs   map[string]*domain.Organization
	nextID int
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: map[string]*domain.Organization{}}
}

func (r *fakeOrgRepo) Create(_ context.Context, org *domain.Organization) error {
	r.nextID++
	org.ID = fmt.Sprintf("org-%d", r.nextID)
	r.orgs[org.ID] = org
	return nil
}

func (r *fakeOrgRepo) FindByID(_ context.Context, id string) (*domain.Organization, error) {
	if org, ok := r.orgs[id]; ok {
		return org, nil
	}
	return nil, ErrNotFound
}

type fakeAssessmentRepo struct {
	assessments map[string]*domain.Assessment
	nextID      int
	findCalls   int
	lastFilter  AssessmentFilter
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{assessments: map[string]*domain.Assessment{}}
}

func (r *fakeAssessmentRepo) Find(_ context.Context, organizationID string, filter AssessmentFilter, _ Paging) ([]domain.Assessment, error) {
	r.findCalls++
	r.lastFilter = filter
	var out []domain.Assessment
	for _, a := range r.assessments {
		if a.OrganizationID == organizationID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) FindByID(_ context.Context, organizationID, id string) (*domain.Assessment, error) {
	a, ok := r.assessments[id]
	if !ok || a.OrganizationID != organizationID {
		return nil, ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeAssessmentRepo) Create(_ context.Context, assessment *domain.Assessment) error {
	r.nextID++
	assessment.ID = fmt.Sprintf("assessment-%d", r.nextID)
	clone := *assessment
	r.assessments[assessment.ID] = &clone
	return nil
}

func (r *fakeAssessmentRepo) Update(_ context.Context, assessment *domain.Assessment) error {
	if _, ok := r.assessments[assessment.ID]; !ok {
		return ErrNotFound
	}
	clone := *assessment
	r.assessments[assessment.ID] = &clone
	return nil
}

func (r *fakeAssessmentRepo) Delete(_ context.Context, organizationID, id string) error {
	a, ok := r.assessments[id]
	if !ok || a.OrganizationID != organizationID {
		return ErrNotFound
	}
	delete(r.assessments, id)
	return nil
}

type statusChange struct {
	id     string
	status domain.InvitationStatus
}

type fakeInvitationRepo struct {
	byToken       map[string]*domain.Invitation
	nextID        int
	statusChanges []statusChange
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{byToken: map[string]*domain.Invitation{}}
}

func (r *fakeInvitationRepo) Create(_ context.Context, invitation *domain.Invitation) error {
	r.nextID++
	invitation.ID = fmt.Sprintf("invitation-%d", r.nextID)
	clone := *invitation
	r.byToken[invitation.Token] = &clone
	return nil
}

func (r *fakeInvitationRepo) FindByToken(_ context.Context, token string) (*domain.Invitation, error) {
	if invitation, ok := r.byToken[token]; ok {
		clone := *invitation
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (r *fakeInvitationRepo) UpdateStatus(_ context.Context, id string, status domain.InvitationStatus) error {
	r.statusChanges = append(r.statusChanges, statusChange{id: id, status: status})
	for _, invitation := range r.byToken {
		if invitation.ID == id {
			invitation.Status = status
			return nil
		}
	}
	return ErrNotFound
}

type fakeResponseRepo struct {
	created []*domain.Response
}

func (r *fakeResponseRepo) Create(_ context.Context, response *domain.Response) error {
	response.ID = fmt.Sprintf("response-%d", len(r.created)+1)
	r.created = append(r.created, response)
	return nil
}

type fakeContactRepo struct {
	created []*domain.ContactMessage
}

func (r *fakeContactRepo) Create(_ context.Context, message *domain.ContactMessage) error {
	message.ID = fmt.Sprintf("contact-%d", len(r.created)+1)
	r.created = append(r.created, message)
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	enabled bool
	err     error
	sent    []sentMail
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeCaptcha struct {
	enabled bool
	ok      bool
	err     error
	calls   int
}

func (c *fakeCaptcha) Enabled() bool { return c.enabled }

func (c *fakeCaptcha) Verify(context.Context, string, string) (bool, error) {
	c.calls++
	return c.ok, c.err
}

type fakeScorer struct {
	scores map[string]int
	calls  int
}

func (s *fakeScorer) Score(_ context.Context, in scoring.Input) scoring.Result {
	s.calls++
	score, ok := s.scores[in.QuestionID]
	if !ok {
		score = 50
	}
	return scoring.Result{Score: score, Feedback: []string{"stub feedback"}, Confidence: 0.5}
}
