package application

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
	"github.com/assessly-hq/assessly-services/api/internal/scoring"
)

type responseService struct {
	invitations InvitationRepository
	assessments AssessmentRepository
	responses   ResponseRepository
	scorer      Scorer
}

// NewResponseService builds the candidate submission use-case. Text answers
// are scored at submission time and the result is snapshotted onto the
// stored answer.
func NewResponseService(invitations InvitationRepository, assessments AssessmentRepository, responses ResponseRepository, scorer Scorer) ResponseService {
	return &responseService{
		invitations: invitations,
		assessments: assessments,
		responses:   responses,
		scorer:      scorer,
	}
}

func (s *responseService) Submit(ctx context.Context, cmd SubmitResponseCommand) (*domain.Response, error) {
	invitation, err := s.invitations.FindByToken(ctx, strings.TrimSpace(cmd.Token))
	if err != nil {
		return nil, err
	}
	if !invitation.Usable(time.Now().UTC()) {
		return nil, ErrInvitationUnusable
	}

	assessment, err := s.assessments.FindByID(ctx, invitation.OrganizationID, invitation.AssessmentID)
	if err != nil {
		return nil, err
	}

	answersByQuestion := make(map[string]AnswerCommand, len(cmd.Answers))
	for _, answer := range cmd.Answers {
		answersByQuestion[answer.QuestionID] = answer
	}

	answers := make([]domain.Answer, 0, len(assessment.Questions))
	scoredTotal := 0
	scoredCount := 0
	for _, question := range assessment.Questions {
		input, ok := answersByQuestion[question.ID]
		if !ok || answerEmpty(input) {
			if question.Required {
				return nil, invalid("question %q requires an answer", question.Text)
			}
			continue
		}

		answer := domain.Answer{
			QuestionID:     question.ID,
			Text:           strings.TrimSpace(input.Text),
			SelectedOption: strings.TrimSpace(input.SelectedOption),
		}

		if question.Type == domain.QuestionText {
			result := s.scorer.Score(ctx, scoring.Input{
				AssessmentID: assessment.ID,
				QuestionID:   question.ID,
				Text:         answer.Text,
				Keywords:     question.Keywords,
				LengthNorm:   question.LengthNorm,
			})
			score := result.Score
			confidence := result.Confidence
			answer.Score = &score
			answer.Confidence = &confidence
			answer.Feedback = append([]string{}, result.Feedback...)
			scoredTotal += score
			scoredCount++
		} else if answer.SelectedOption != "" && !optionAllowed(question.Options, answer.SelectedOption) {
			return nil, invalid("question %q: option %q is not available", question.Text, answer.SelectedOption)
		}

		answers = append(answers, answer)
	}

	if len(answers) == 0 {
		return nil, invalid("at least one answer is required")
	}

	totalScore := 0
	if scoredCount > 0 {
		totalScore = int(math.Round(float64(scoredTotal) / float64(scoredCount)))
	}

	response := &domain.Response{
		OrganizationID: invitation.OrganizationID,
		AssessmentID:   invitation.AssessmentID,
		InvitationID:   invitation.ID,
		CandidateEmail: invitation.CandidateEmail,
		Answers:        answers,
		TotalScore:     totalScore,
		SubmittedAt:    time.Now().UTC(),
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, err
	}

	if err := s.invitations.UpdateStatus(ctx, invitation.ID, domain.InvitationSubmitted); err != nil {
		return nil, err
	}

	return response, nil
}

func answerEmpty(answer AnswerCommand) bool {
	return strings.TrimSpace(answer.Text) == "" && strings.TrimSpace(answer.SelectedOption) == ""
}

func optionAllowed(options []string, selected string) bool {
	for _, option := range options {
		if option == selected {
			return true
		}
	}
	return false
}
