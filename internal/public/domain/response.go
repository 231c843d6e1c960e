package domain

import "time"

// Answer is a candidate's reply to one question. Score fields are a snapshot
// of the heuristic scorer output at submission time; they stay nil for
// choice questions.
type Answer struct {
	QuestionID     string
	Text           string
	SelectedOption string
	Score          *int
	Feedback       []string
	Confidence     *float64
}

// Response is one candidate's submission for an assessment.
type Response struct {
	ID             string
	OrganizationID string
	AssessmentID   string
	InvitationID   string
	CandidateEmail string
	Answers        []Answer
	TotalScore     int
	SubmittedAt    time.Time
}
