package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

const invitationTTL = 14 * 24 * time.Hour

type invitationService struct {
	invitations  InvitationRepository
	assessments  AssessmentRepository
	mailer       Mailer
	dashboardURL string
	logger       *zap.Logger
}

// NewInvitationService builds the candidate invitation flow. dashboardURL
// is the public base used to build take-assessment links; when empty the
// invitation email carries the bare token.
func NewInvitationService(invitations InvitationRepository, assessments AssessmentRepository, mailer Mailer, dashboardURL string, logger *zap.Logger) InvitationService {
	return &invitationService{
		invitations:  invitations,
		assessments:  assessments,
		mailer:       mailer,
		dashboardURL: strings.TrimRight(dashboardURL, "/"),
		logger:       logger,
	}
}

// Invite creates an invitation for an active assessment and emails the
// candidate. Email delivery failure does not fail the invite; the mailer
// records it and the dashboard still shows the link for manual sending.
func (s *invitationService) Invite(ctx context.Context, cmd InviteCommand) (*domain.Invitation, error) {
	email, err := domain.NewEmail(cmd.CandidateEmail)
	if err != nil {
		return nil, invalid("%s", err)
	}

	assessment, err := s.assessments.FindByID(ctx, cmd.OrganizationID, cmd.AssessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.Status != domain.AssessmentActive {
		return nil, ErrAssessmentInactive
	}

	now := time.Now().UTC()
	invitation := &domain.Invitation{
		OrganizationID: cmd.OrganizationID,
		AssessmentID:   cmd.AssessmentID,
		CandidateEmail: email,
		CandidateName:  strings.TrimSpace(cmd.CandidateName),
		Token:          uuid.NewString(),
		Status:         domain.InvitationPending,
		ExpiresAt:      now.Add(invitationTTL),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.invitations.Create(ctx, invitation); err != nil {
		return nil, err
	}

	if s.mailer != nil && s.mailer.Enabled() {
		subject := fmt.Sprintf("You're invited: %s", assessment.Title)
		body := s.buildInviteEmail(invitation, assessment)
		if err := s.mailer.Send(ctx, invitation.CandidateEmail, subject, body); err != nil && s.logger != nil {
			s.logger.Warn("invitation email failed",
				zap.String("invitationId", invitation.ID),
				zap.Error(err),
			)
		}
	}

	return invitation, nil
}

// Open resolves an invitation token for a candidate. Expired invitations
// are marked as such on first touch; pending ones move to opened.
func (s *invitationService) Open(ctx context.Context, token string) (*domain.Invitation, *domain.Assessment, error) {
	invitation, err := s.invitations.FindByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	if !invitation.Usable(now) {
		if invitation.Status == domain.InvitationPending || invitation.Status == domain.InvitationOpened {
			if err := s.invitations.UpdateStatus(ctx, invitation.ID, domain.InvitationExpired); err != nil && s.logger != nil {
				s.logger.Warn("marking invitation expired failed", zap.String("invitationId", invitation.ID), zap.Error(err))
			}
		}
		return nil, nil, ErrInvitationUnusable
	}

	assessment, err := s.assessments.FindByID(ctx, invitation.OrganizationID, invitation.AssessmentID)
	if err != nil {
		return nil, nil, err
	}

	if invitation.Status == domain.InvitationPending {
		if err := s.invitations.UpdateStatus(ctx, invitation.ID, domain.InvitationOpened); err != nil {
			return nil, nil, err
		}
		invitation.Status = domain.InvitationOpened
	}

	return invitation, assessment, nil
}

func (s *invitationService) buildInviteEmail(invitation *domain.Invitation, assessment *domain.Assessment) string {
	var builder strings.Builder
	greeting := invitation.CandidateName
	if greeting == "" {
		greeting = "there"
	}
	builder.WriteString(fmt.Sprintf("Hi %s,\n\n", greeting))
	builder.WriteString(fmt.Sprintf("You have been invited to take the assessment %q.\n", assessment.Title))
	if assessment.DurationMinutes > 0 {
		builder.WriteString(fmt.Sprintf("Expect it to take about %d minutes.\n", assessment.DurationMinutes))
	}
	builder.WriteString("\n")
	if s.dashboardURL != "" {
		builder.WriteString(fmt.Sprintf("Start here: %s/take/%s\n", s.dashboardURL, invitation.Token))
	} else {
		builder.WriteString(fmt.Sprintf("Your invitation token: %s\n", invitation.Token))
	}
	builder.WriteString(fmt.Sprintf("\nThe invitation expires on %s.\n", invitation.ExpiresAt.Format("Jan 2, 2006")))
	return builder.String()
}
