package domain

import (
	"strings"
	"testing"
)

func TestNewEmail(t *testing.T) {
	t.Parallel()

	got, err := NewEmail("  Owner@Example.COM ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "owner@example.com" {
		t.Fatalf("expected lowercase address, got %q", got)
	}

	for _, bad := range []string{"", "   ", "not-an-email", "a@"} {
		if _, err := NewEmail(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestNewRole(t *testing.T) {
	t.Parallel()

	role, err := NewRole("")
	if err != nil || role != RoleMember {
		t.Fatalf("empty role should default to member, got %q err=%v", role, err)
	}
	role, err = NewRole(" OWNER ")
	if err != nil || role != RoleOwner {
		t.Fatalf("expected owner, got %q err=%v", role, err)
	}
	if _, err := NewRole("superuser"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestNewAssessmentStatus(t *testing.T) {
	t.Parallel()

	status, err := NewAssessmentStatus("")
	if err != nil || status != AssessmentDraft {
		t.Fatalf("empty status should default to draft, got %q err=%v", status, err)
	}
	status, err = NewAssessmentStatus("Active")
	if err != nil || status != AssessmentActive {
		t.Fatalf("expected active, got %q err=%v", status, err)
	}
	if _, err := NewAssessmentStatus("paused"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestNewQuestionType(t *testing.T) {
	t.Parallel()

	qt, err := NewQuestionType("")
	if err != nil || qt != QuestionText {
		t.Fatalf("empty type should default to text, got %q err=%v", qt, err)
	}
	qt, err = NewQuestionType("choice")
	if err != nil || qt != QuestionChoice {
		t.Fatalf("expected choice, got %q err=%v", qt, err)
	}
	if _, err := NewQuestionType("essay"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestValidateQuestions(t *testing.T) {
	t.Parallel()

	if err := ValidateQuestions(nil); err == nil {
		t.Fatalf("expected error for empty question list")
	}

	if err := ValidateQuestions([]Question{{Text: "   ", Type: QuestionText}}); err == nil {
		t.Fatalf("expected error for blank question text")
	}

	err := ValidateQuestions([]Question{{Text: "Pick one", Type: QuestionChoice, Options: []string{"only"}}})
	if err == nil || !strings.Contains(err.Error(), "two or more") && !strings.Contains(err.Error(), "at least two") {
		t.Fatalf("expected option-count error, got %v", err)
	}

	valid := []Question{
		{Text: "Describe rate limiting", Type: QuestionText},
		{Text: "Pick one", Type: QuestionChoice, Options: []string{"a", "b"}},
	}
	if err := ValidateQuestions(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
