package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

// NewEmail validates and canonicalizes an email address. Stored emails are
// always lowercase so uniqueness checks behave.
func NewEmail(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid email: %s", trimmed)
	}
	return strings.ToLower(addr.Address), nil
}

// NewRole parses a role string, defaulting empty input to member.
func NewRole(value string) (Role, error) {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return RoleMember, nil
	}
	switch Role(trimmed) {
	case RoleOwner, RoleMember, RoleAdmin:
		return Role(trimmed), nil
	}
	return "", fmt.Errorf("invalid role: %s", trimmed)
}

// NewAssessmentStatus parses a status string, defaulting empty input to draft.
func NewAssessmentStatus(value string) (AssessmentStatus, error) {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return AssessmentDraft, nil
	}
	switch AssessmentStatus(trimmed) {
	case AssessmentDraft, AssessmentActive, AssessmentArchived:
		return AssessmentStatus(trimmed), nil
	}
	return "", fmt.Errorf("invalid assessment status: %s", trimmed)
}

// NewQuestionType parses a question type string, defaulting empty input to text.
func NewQuestionType(value string) (QuestionType, error) {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return QuestionText, nil
	}
	switch QuestionType(trimmed) {
	case QuestionText, QuestionChoice:
		return QuestionType(trimmed), nil
	}
	return "", fmt.Errorf("invalid question type: %s", trimmed)
}

// ValidateQuestions enforces the structural rules shared by create and
// update: at least one question, no blank text, and choice questions need
// two or more options.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("questions must not be empty")
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("question %d: text is required", i+1)
		}
		if q.Type == QuestionChoice && len(q.Options) < 2 {
			return fmt.Errorf("question %d: choice questions need at least two options", i+1)
		}
	}
	return nil
}
