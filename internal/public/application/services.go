package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
	"github.com/assessly-hq/assessly-services/api/internal/scoring"
)

// Sentinel errors shared across services. Repositories translate their
// driver-level not-found into ErrNotFound so handlers never import the
// storage driver to classify an error.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvitationUnusable = errors.New("invitation is no longer usable")
	ErrAssessmentInactive = errors.New("assessment is not active")
	ErrCaptchaRejected    = errors.New("captcha verification failed")
)

// invalid wraps a validation failure so handlers can map it to a 400.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}

// UserRepository abstracts user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// OrganizationRepository abstracts tenant persistence.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	FindByID(ctx context.Context, id string) (*domain.Organization, error)
}

// AssessmentFilter expresses search criteria for assessments. Keyword
// matches title, description and question text.
type AssessmentFilter struct {
	Status  string
	Keyword string
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
	Sort  string
}

// AssessmentRepository handles assessment reads/writes, always org-scoped.
type AssessmentRepository interface {
	Find(ctx context.Context, organizationID string, filter AssessmentFilter, paging Paging) ([]domain.Assessment, error)
	FindByID(ctx context.Context, organizationID, id string) (*domain.Assessment, error)
	Create(ctx context.Context, assessment *domain.Assessment) error
	Update(ctx context.Context, assessment *domain.Assessment) error
	Delete(ctx context.Context, organizationID, id string) error
}

// InvitationRepository handles candidate invitations.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *domain.Invitation) error
	FindByToken(ctx context.Context, token string) (*domain.Invitation, error)
	UpdateStatus(ctx context.Context, id string, status domain.InvitationStatus) error
}

// ResponseRepository stores candidate submissions.
type ResponseRepository interface {
	Create(ctx context.Context, response *domain.Response) error
}

// ContactRepository stores contact-form messages.
type ContactRepository interface {
	Create(ctx context.Context, message *domain.ContactMessage) error
}

// Mailer is the outbound email port; satisfied by internal/mail.
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, to, subject, body string) error
}

// CaptchaVerifier is the contact-form CAPTCHA port; satisfied by
// internal/captcha.
type CaptchaVerifier interface {
	Enabled() bool
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// Scorer is the text-answer scoring port; satisfied by scoring.Engine.
type Scorer interface {
	Score(ctx context.Context, in scoring.Input) scoring.Result
}

// AuthService covers dashboard account registration and login.
type AuthService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

// AssessmentService covers the org-scoped assessment use-cases.
type AssessmentService interface {
	List(ctx context.Context, organizationID string, filter AssessmentFilter, paging Paging) ([]domain.Assessment, error)
	Detail(ctx context.Context, organizationID, id string) (*domain.Assessment, error)
	Create(ctx context.Context, cmd UpsertAssessmentCommand) (*domain.Assessment, error)
	Update(ctx context.Context, organizationID, id string, cmd UpsertAssessmentCommand) (*domain.Assessment, error)
	Delete(ctx context.Context, organizationID, id string) error
	Publish(ctx context.Context, organizationID, id string) (*domain.Assessment, error)
	Search(ctx context.Context, organizationID, keyword string, paging Paging) ([]domain.Assessment, error)
}

// InvitationService covers the candidate invitation flow.
type InvitationService interface {
	Invite(ctx context.Context, cmd InviteCommand) (*domain.Invitation, error)
	Open(ctx context.Context, token string) (*domain.Invitation, *domain.Assessment, error)
}

// ResponseService accepts candidate submissions.
type ResponseService interface {
	Submit(ctx context.Context, cmd SubmitResponseCommand) (*domain.Response, error)
}

// ContactService accepts contact/demo form submissions.
type ContactService interface {
	Submit(ctx context.Context, cmd ContactCommand) (*domain.ContactMessage, error)
}

// RegisterCommand captures a new tenant sign-up.
type RegisterCommand struct {
	OrganizationName string
	Name             string
	Email            string
	Password         string
}

// QuestionCommand is one question in an upsert payload.
type QuestionCommand struct {
	ID         string
	Text       string
	Type       string
	Options    []string
	Required   bool
	Keywords   []string
	LengthNorm int
}

// UpsertAssessmentCommand captures assessment create/update input.
type UpsertAssessmentCommand struct {
	OrganizationID  string
	Title           string
	Description     string
	DurationMinutes int
	Status          string
	Questions       []QuestionCommand
	CreatedBy       string
}

// InviteCommand captures a candidate invitation.
type InviteCommand struct {
	OrganizationID string
	AssessmentID   string
	CandidateEmail string
	CandidateName  string
	InvitedBy      string
}

// AnswerCommand is one answer in a submission payload.
type AnswerCommand struct {
	QuestionID     string
	Text           string
	SelectedOption string
}

// SubmitResponseCommand captures a candidate submission keyed by the
// invitation token.
type SubmitResponseCommand struct {
	Token   string
	Answers []AnswerCommand
}

// ContactCommand captures a contact/demo form post.
type ContactCommand struct {
	Name         string
	Email        string
	Company      string
	Message      string
	CaptchaToken string
	RemoteIP     string
}
