package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

func activeAssessmentWithQuestions() *domain.Assessment {
	return &domain.Assessment{
		ID:             "assessment-1",
		OrganizationID: "org-1",
		Title:          "Backend Screen",
		Status:         domain.AssessmentActive,
		Questions: []domain.Question{
			{ID: "q1", Text: "Describe rate limiting", Type: domain.QuestionText, Required: true, Keywords: []string{"token bucket"}, LengthNorm: 400},
			{ID: "q2", Text: "Explain an incident", Type: domain.QuestionText},
			{ID: "q3", Text: "Pick a database", Type: domain.QuestionChoice, Options: []string{"postgres", "mongo"}},
		},
	}
}

func usableInvitation(token string) *domain.Invitation {
	now := time.Now().UTC()
	return &domain.Invitation{
		OrganizationID: "org-1",
		AssessmentID:   "assessment-1",
		CandidateEmail: "candidate@example.com",
		Token:          token,
		Status:         domain.InvitationOpened,
		ExpiresAt:      now.Add(24 * time.Hour),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestResponseService_Submit(t *testing.T) {
	t.Parallel()

	invitations := newFakeInvitationRepo()
	if err := invitations.Create(context.Background(), usableInvitation("tok-1")); err != nil {
		t.Fatalf("seed invitation: %v", err)
	}
	assessments := newFakeAssessmentRepo()
	assessments.assessments["assessment-1"] = activeAssessmentWithQuestions()
	responses := &fakeResponseRepo{}
	scorer := &fakeScorer{scores: map[string]int{"q1": 80, "q2": 71}}

	svc := NewResponseService(invitations, assessments, responses, scorer)
	response, err := svc.Submit(context.Background(), SubmitResponseCommand{
		Token: " tok-1 ",
		Answers: []AnswerCommand{
			{QuestionID: "q1", Text: "Token bucket with redis counters."},
			{QuestionID: "q2", Text: "We rolled back and wrote a postmortem."},
			{QuestionID: "q3", SelectedOption: "mongo"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(response.Answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(response.Answers))
	}
	first := response.Answers[0]
	if first.Score == nil || *first.Score != 80 || first.Confidence == nil {
		t.Fatalf("text answer must carry a score snapshot, got %+v", first)
	}
	choice := response.Answers[2]
	if choice.Score != nil || choice.Confidence != nil {
		t.Fatalf("choice answers must not be scored, got %+v", choice)
	}
	// Mean of 80 and 71 rounds to 76.
	if response.TotalScore != 76 {
		t.Fatalf("expected total score 76, got %d", response.TotalScore)
	}
	if response.CandidateEmail != "candidate@example.com" {
		t.Fatalf("candidate email must come from the invitation, got %q", response.CandidateEmail)
	}
	if scorer.calls != 2 {
		t.Fatalf("expected 2 scorer calls, got %d", scorer.calls)
	}
	if len(responses.created) != 1 {
		t.Fatalf("response must be persisted")
	}
	if len(invitations.statusChanges) != 1 || invitations.statusChanges[0].status != domain.InvitationSubmitted {
		t.Fatalf("invitation must move to submitted, got %+v", invitations.statusChanges)
	}
}

func TestResponseService_Submit_MissingRequiredAnswer(t *testing.T) {
	t.Parallel()

	invitations := newFakeInvitationRepo()
	if err := invitations.Create(context.Background(), usableInvitation("tok-1")); err != nil {
		t.Fatalf("seed invitation: %v", err)
	}
	assessments := newFakeAssessmentRepo()
	assessments.assessments["assessment-1"] = activeAssessmentWithQuestions()
	responses := &fakeResponseRepo{}

	svc := NewResponseService(invitations, assessments, responses, &fakeScorer{})
	_, err := svc.Submit(context.Background(), SubmitResponseCommand{
		Token:   "tok-1",
		Answers: []AnswerCommand{{QuestionID: "q2", Text: "optional only"}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing required answer, got %v", err)
	}
	if len(responses.created) != 0 {
		t.Fatalf("nothing must be persisted on validation failure")
	}
}

func TestResponseService_Submit_ExpiredInvitation(t *testing.T) {
	t.Parallel()

	invitations := newFakeInvitationRepo()
	expired := usableInvitation("tok-1")
	expired.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	if err := invitations.Create(context.Background(), expired); err != nil {
		t.Fatalf("seed invitation: %v", err)
	}

	svc := NewResponseService(invitations, newFakeAssessmentRepo(), &fakeResponseRepo{}, &fakeScorer{})
	_, err := svc.Submit(context.Background(), SubmitResponseCommand{
		Token:   "tok-1",
		Answers: []AnswerCommand{{QuestionID: "q1", Text: "too late"}},
	})
	if !errors.Is(err, ErrInvitationUnusable) {
		t.Fatalf("expected ErrInvitationUnusable, got %v", err)
	}
}

func TestResponseService_Submit_AlreadySubmitted(t *testing.T) {
	t.Parallel()

	invitations := newFakeInvitationRepo()
	submitted := usableInvitation("tok-1")
	submitted.Status = domain.InvitationSubmitted
	if err := invitations.Create(context.Background(), submitted); err != nil {
		t.Fatalf("seed invitation: %v", err)
	}

	svc := NewResponseService(invitations, newFakeAssessmentRepo(), &fakeResponseRepo{}, &fakeScorer{})
	_, err := svc.Submit(context.Background(), SubmitResponseCommand{
		Token:   "tok-1",
		Answers: []AnswerCommand{{QuestionID: "q1", Text: "again"}},
	})
	if !errors.Is(err, ErrInvitationUnusable) {
		t.Fatalf("expected ErrInvitationUnusable for replay, got %v", err)
	}
}

func TestResponseService_Submit_UnknownOption(t *testing.T) {
	t.Parallel()

	invitations := newFakeInvitationRepo()
	if err := invitations.Create(context.Background(), usableInvitation("tok-1")); err != nil {
		t.Fatalf("seed invitation: %v", err)
	}
	assessments := newFakeAssessmentRepo()
	assessments.assessments["assessment-1"] = activeAssessmentWithQuestions()

	svc := NewResponseService(invitations, assessments, &fakeResponseRepo{}, &fakeScorer{})
	_, err := svc.Submit(context.Background(), SubmitResponseCommand{
		Token: "tok-1",
		Answers: []AnswerCommand{
			{QuestionID: "q1", Text: "fine"},
			{QuestionID: "q3", SelectedOption: "oracle"},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown option, got %v", err)
	}
}

func TestResponseService_Submit_UnknownToken(t *testing.T) {
	t.Parallel()

	svc := NewResponseService(newFakeInvitationRepo(), newFakeAssessmentRepo(), &fakeResponseRepo{}, &fakeScorer{})
	_, err := svc.Submit(context.Background(), SubmitResponseCommand{
		Token:   "missing",
		Answers: []AnswerCommand{{QuestionID: "q1", Text: "hi"}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
