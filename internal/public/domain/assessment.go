package domain

import "time"

// AssessmentStatus is the lifecycle state of an assessment.
type AssessmentStatus string

const (
	AssessmentDraft    AssessmentStatus = "draft"
	AssessmentActive   AssessmentStatus = "active"
	AssessmentArchived AssessmentStatus = "archived"
)

// QuestionType discriminates free-text questions from multiple choice.
type QuestionType string

const (
	QuestionText   QuestionType = "text"
	QuestionChoice QuestionType = "choice"
)

// Assessment is the org-scoped questionnaire aggregate candidates are
// invited to take.
type Assessment struct {
	ID              string
	OrganizationID  string
	Title           string
	Description     string
	DurationMinutes int
	Status          AssessmentStatus
	Questions       []Question
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Question is embedded in an assessment. Keywords and LengthNorm feed the
// text-response scorer; both are empty/zero for choice questions.
type Question struct {
	ID         string
	Text       string
	Type       QuestionType
	Options    []string
	Required   bool
	Keywords   []string
	LengthNorm int
}

// TextQuestion returns the question with the given id when it is a free-text
// question, or nil.
func (a Assessment) TextQuestion(questionID string) *Question {
	for i := range a.Questions {
		if a.Questions[i].ID == questionID && a.Questions[i].Type == QuestionText {
			return &a.Questions[i]
		}
	}
	return nil
}

// Question returns the embedded question with the given id, or nil.
func (a Assessment) Question(questionID string) *Question {
	for i := range a.Questions {
		if a.Questions[i].ID == questionID {
			return &a.Questions[i]
		}
	}
	return nil
}
