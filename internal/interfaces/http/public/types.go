package public

import (
	"time"

	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

type registerRequest struct {
	OrganizationName string `json:"organizationName"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name,omitempty"`
	Role           string `json:"role"`
	OrganizationID string `json:"organizationId"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type questionPayload struct {
	ID         string   `json:"id,omitempty"`
	Text       string   `json:"text"`
	Type       string   `json:"type"`
	Options    []string `json:"options,omitempty"`
	Required   bool     `json:"required,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	LengthNorm int      `json:"lengthNorm,omitempty"`
}

type assessmentRequest struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	DurationMinutes int               `json:"durationMinutes"`
	Status          string            `json:"status"`
	Questions       []questionPayload `json:"questions"`
}

type assessmentResponse struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	DurationMinutes int               `json:"durationMinutes,omitempty"`
	Status          string            `json:"status"`
	Questions       []questionPayload `json:"questions"`
	CreatedBy       string            `json:"createdBy,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

type assessmentListResponse struct {
	Items []assessmentResponse `json:"items"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
	Count int                  `json:"count"`
}

type inviteRequest struct {
	CandidateEmail string `json:"candidateEmail"`
	CandidateName  string `json:"candidateName"`
}

type invitationResponse struct {
	ID             string    `json:"id"`
	AssessmentID   string    `json:"assessmentId"`
	CandidateEmail string    `json:"candidateEmail"`
	CandidateName  string    `json:"candidateName,omitempty"`
	Token          string    `json:"token"`
	Status         string    `json:"status"`
	ExpiresAt      time.Time `json:"expiresAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

// candidateQuestionResponse is the candidate-facing question view. Scoring
// hints (keywords, length normalization) never leave the backend.
type candidateQuestionResponse struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required,omitempty"`
}

type candidateAssessmentResponse struct {
	ID              string                      `json:"id"`
	Title           string                      `json:"title"`
	Description     string                      `json:"description,omitempty"`
	DurationMinutes int                         `json:"durationMinutes,omitempty"`
	Questions       []candidateQuestionResponse `json:"questions"`
}

type invitationOpenResponse struct {
	Invitation invitationResponse          `json:"invitation"`
	Assessment candidateAssessmentResponse `json:"assessment"`
}

type answerRequest struct {
	QuestionID     string `json:"questionId"`
	Text           string `json:"text,omitempty"`
	SelectedOption string `json:"selectedOption,omitempty"`
}

type submitRequest struct {
	Answers []answerRequest `json:"answers"`
}

type answerResponse struct {
	QuestionID string   `json:"questionId"`
	Score      *int     `json:"score,omitempty"`
	Feedback   []string `json:"feedback,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type submitResponse struct {
	ID          string           `json:"id"`
	TotalScore  int              `json:"totalScore"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Answers     []answerResponse `json:"answers"`
}

type scoreRequest struct {
	AssessmentID string `json:"assessmentId"`
	QuestionID   string `json:"questionId"`
	Text         string `json:"text"`
}

type contactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Company      string `json:"company"`
	Message      string `json:"message"`
	CaptchaToken string `json:"captchaToken"`
}

type checkoutRequest struct {
	PriceID string `json:"priceId"`
}

type sessionResponse struct {
	URL string `json:"url"`
}

func buildUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID,
	}
}

func buildAssessmentResponse(assessment *domain.Assessment) assessmentResponse {
	questions := make([]questionPayload, 0, len(assessment.Questions))
	for _, q := range assessment.Questions {
		questions = append(questions, questionPayload{
			ID:         q.ID,
			Text:       q.Text,
			Type:       string(q.Type),
			Options:    append([]string{}, q.Options...),
			Required:   q.Required,
			Keywords:   append([]string{}, q.Keywords...),
			LengthNorm: q.LengthNorm,
		})
	}
	return assessmentResponse{
		ID:              assessment.ID,
		Title:           assessment.Title,
		Description:     assessment.Description,
		DurationMinutes: assessment.DurationMinutes,
		Status:          string(assessment.Status),
		Questions:       questions,
		CreatedBy:       assessment.CreatedBy,
		CreatedAt:       assessment.CreatedAt,
		UpdatedAt:       assessment.UpdatedAt,
	}
}

func buildCandidateAssessmentResponse(assessment *domain.Assessment) candidateAssessmentResponse {
	questions := make([]candidateQuestionResponse, 0, len(assessment.Questions))
	for _, q := range assessment.Questions {
		questions = append(questions, candidateQuestionResponse{
			ID:       q.ID,
			Text:     q.Text,
			Type:     string(q.Type),
			Options:  append([]string{}, q.Options...),
			Required: q.Required,
		})
	}
	return candidateAssessmentResponse{
		ID:              assessment.ID,
		Title:           assessment.Title,
		Description:     assessment.Description,
		DurationMinutes: assessment.DurationMinutes,
		Questions:       questions,
	}
}

func buildInvitationResponse(invitation *domain.Invitation) invitationResponse {
	return invitationResponse{
		ID:             invitation.ID,
		AssessmentID:   invitation.AssessmentID,
		CandidateEmail: invitation.CandidateEmail,
		CandidateName:  invitation.CandidateName,
		Token:          invitation.Token,
		Status:         string(invitation.Status),
		ExpiresAt:      invitation.ExpiresAt,
		CreatedAt:      invitation.CreatedAt,
	}
}

func buildSubmitResponse(response *domain.Response) submitResponse {
	answers := make([]answerResponse, 0, len(response.Answers))
	for _, answer := range response.Answers {
		answers = append(answers, answerResponse{
			QuestionID: answer.QuestionID,
			Score:      answer.Score,
			Feedback:   answer.Feedback,
			Confidence: answer.Confidence,
		})
	}
	return submitResponse{
		ID:          response.ID,
		TotalScore:  response.TotalScore,
		SubmittedAt: response.SubmittedAt,
		Answers:     answers,
	}
}
