package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

func seedActiveAssessment(repo *fakeAssessmentRepo) {
	repo.assessments["assessment-1"] = &domain.Assessment{
		ID:              "assessment-1",
		OrganizationID:  "org-1",
		Title:           "Backend Screen",
		DurationMinutes: 45,
		Status:          domain.AssessmentActive,
		Questions:       []domain.Question{{ID: "q1", Text: "q", Type: domain.QuestionText}},
	}
}

func TestInvitationService_Invite(t *testing.T) {
	t.Parallel()

	invitations := newFakeInvitationRepo()
	assessments := newFakeAssessmentRepo()
	seedActiveAssessment(assessments)
	mailer := &fakeMailer{enabled: true}

	svc := NewInvitationService(invitations, assessments, mailer, "https://app.assessly.app/", zap.NewNop())
	invitation, err := svc.Invite(context.Background(), InviteCommand{
		OrganizationID: "org-1",
		AssessmentID:   "assessment-1",
		CandidateEmail: " Candidate@Example.com ",
		CandidateName:  "Sam",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invitation.ID == "" || invitation.Token == "" {
		t.Fatalf("invitation must be persisted with a token, got %+v", invitation)
	}
	if invitation.CandidateEmail != "candidate@example.com" {
		t.Fatalf("email should be canonicalized, got %q", invitation.CandidateEmail)
	}
	if invitation.Status != domain.InvitationPending {
		t.Fatalf("new invitations start pending, got %q", invitation.Status)
	}
	if remaining := time.Until(invitation.ExpiresAt); remaining < 13*24*time.Hour {
		t.Fatalf("expected roughly two weeks of validity, got %v", remaining)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected one invitation email, got %d", len(mailer.sent))
	}
	mail := mailer.sent[0]
	if mail.to != "candidate@example.com" {
		t.Fatalf("unexpected recipient %q", mail.to)
	}
	if !strings.Contains(mail.body, "https://app.assessly.app/take/"+invitation.Token) {
		t.Fatalf("email must carry the take link, got:\n%s", mail.body)
	}
}

func TestInvitationService_Invite_InactiveAssessment(t *testing.T) {
	t.Parallel()

	assessments := newFakeAssessmentRepo()
	assessments.assessments["assessment-1"] = &domain.Assessment{
		ID:             "assessment-1",
		OrganizationID: "org-1",
		Status:         domain.AssessmentDraft,
	}

	svc := NewInvitationService(newFakeInvitationRepo(), assessments, &fakeMailer{}, "", zap.NewNop())
	_, err := svc.Invite(context.Background(), InviteCommand{
		OrganizationID: "org-1",
		AssessmentID:   "assessment-1",
		CandidateEmail: "candidate@example.com",
	})
	if !errors.Is(err, ErrAssessmentInactive) {
		t.Fatalf("expected ErrAssessmentInactive, got %v", err)
	}
}

func TestInvitationService_Invite_MailFailureDoesNotFail(t *testing.T) {
	t.Parallel()

	invitations := newFakeInvitationRepo()
	assessments := newFakeAssessmentRepo()
	seedActiveAssessment(assessments)
	mailer := &fakeMailer{enabled: true, err: errors.New("smtp down")}

	svc := NewInvitationService(invitations, assessments, mailer, "", zap.NewNop())
	invitation, err := svc.Invite(context.Background(), InviteCommand{
		OrganizationID: "org-1",
		AssessmentID:   "assessment-1",
		CandidateEmail: "candidate@example.com",
	})
	if err != nil {
		t.Fatalf("invite must survive mail failure, got %v", err)
	}
	if invitation.ID == "" {
		t.Fatalf("invitation must still be persisted")
	}
}

func TestInvitationService_Open(t *testing.T) {
	t.Parallel()

	invitations := newFakeInvitationRepo()
	pending := usableInvitation("tok-1")
	pending.Status = domain.InvitationPending
	if err := invitations.Create(context.Background(), pending); err != nil {
		t.Fatalf("seed invitation: %v", err)
	}
	assessments := newFakeAssessmentRepo()
	seedActiveAssessment(assessments)

	svc := NewInvitationService(invitations, assessments, &fakeMailer{}, "", zap.NewNop())
	invitation, assessment, err := svc.Open(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assessment.ID != "assessment-1" {
		t.Fatalf("unexpected assessment %+v", assessment)
	}
	if invitation.Status != domain.InvitationOpened {
		t.Fatalf("first open must move the invitation to opened, got %q", invitation.Status)
	}
	if len(invitations.statusChanges) != 1 || invitations.statusChanges[0].status != domain.InvitationOpened {
		t.Fatalf("status change not persisted: %+v", invitations.statusChanges)
	}

	// Re-opening an already-opened invitation is a no-op on status.
	if _, _, err := svc.Open(context.Background(), "tok-1"); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if len(invitations.statusChanges) != 1 {
		t.Fatalf("reopen must not write another status change")
	}
}

func TestInvitationService_Open_ExpiredMarked(t *testing.T) {
	t.Parallel()

	invitations := newFakeInvitationRepo()
	expired := usableInvitation("tok-1")
	expired.Status = domain.InvitationPending
	expired.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	if err := invitations.Create(context.Background(), expired); err != nil {
		t.Fatalf("seed invitation: %v", err)
	}

	svc := NewInvitationService(invitations, newFakeAssessmentRepo(), &fakeMailer{}, "", zap.NewNop())
	_, _, err := svc.Open(context.Background(), "tok-1")
	if !errors.Is(err, ErrInvitationUnusable) {
		t.Fatalf("expected ErrInvitationUnusable, got %v", err)
	}
	if len(invitations.statusChanges) != 1 || invitations.statusChanges[0].status != domain.InvitationExpired {
		t.Fatalf("expired invitation must be marked on first touch, got %+v", invitations.statusChanges)
	}
}

func TestInvitationService_Open_UnknownToken(t *testing.T) {
	t.Parallel()

	svc := NewInvitationService(newFakeInvitationRepo(), newFakeAssessmentRepo(), &fakeMailer{}, "", zap.NewNop())
	if _, _, err := svc.Open(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
