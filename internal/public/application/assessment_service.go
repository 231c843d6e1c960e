package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

type assessmentService struct {
	repo AssessmentRepository
}

// NewAssessmentService builds the org-scoped assessment use-cases.
func NewAssessmentService(repo AssessmentRepository) AssessmentService {
	return &assessmentService{repo: repo}
}

func (s *assessmentService) List(ctx context.Context, organizationID string, filter AssessmentFilter, paging Paging) ([]domain.Assessment, error) {
	return s.repo.Find(ctx, organizationID, filter, paging)
}

func (s *assessmentService) Detail(ctx context.Context, organizationID, id string) (*domain.Assessment, error) {
	return s.repo.FindByID(ctx, organizationID, id)
}

func (s *assessmentService) Create(ctx context.Context, cmd UpsertAssessmentCommand) (*domain.Assessment, error) {
	assessment, err := buildAssessmentFromCommand("", cmd)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	assessment.CreatedAt = now
	assessment.UpdatedAt = now
	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *assessmentService) Update(ctx context.Context, organizationID, id string, cmd UpsertAssessmentCommand) (*domain.Assessment, error) {
	existing, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	cmd.OrganizationID = organizationID
	assessment, err := buildAssessmentFromCommand(id, cmd)
	if err != nil {
		return nil, err
	}
	assessment.CreatedBy = existing.CreatedBy
	assessment.CreatedAt = existing.CreatedAt
	assessment.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *assessmentService) Delete(ctx context.Context, organizationID, id string) error {
	return s.repo.Delete(ctx, organizationID, id)
}

// Publish moves a draft to active. Archived assessments stay archived;
// republishing them would resurrect invitations that candidates may still
// hold tokens for.
func (s *assessmentService) Publish(ctx context.Context, organizationID, id string) (*domain.Assessment, error) {
	assessment, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if assessment.Status != domain.AssessmentDraft {
		return nil, invalid("only draft assessments can be published (current status: %s)", assessment.Status)
	}
	if err := domain.ValidateQuestions(assessment.Questions); err != nil {
		return nil, invalid("%s", err)
	}

	assessment.Status = domain.AssessmentActive
	assessment.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *assessmentService) Search(ctx context.Context, organizationID, keyword string, paging Paging) ([]domain.Assessment, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []domain.Assessment{}, nil
	}
	return s.repo.Find(ctx, organizationID, AssessmentFilter{Keyword: keyword}, paging)
}

func buildAssessmentFromCommand(id string, cmd UpsertAssessmentCommand) (*domain.Assessment, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, invalid("title is required")
	}
	if cmd.OrganizationID == "" {
		return nil, invalid("organization id is required")
	}
	status, err := domain.NewAssessmentStatus(cmd.Status)
	if err != nil {
		return nil, invalid("%s", err)
	}

	questions := make([]domain.Question, 0, len(cmd.Questions))
	for _, q := range cmd.Questions {
		questionType, err := domain.NewQuestionType(q.Type)
		if err != nil {
			return nil, invalid("%s", err)
		}
		questionID := strings.TrimSpace(q.ID)
		if questionID == "" {
			questionID = uuid.NewString()
		}
		questions = append(questions, domain.Question{
			ID:         questionID,
			Text:       strings.TrimSpace(q.Text),
			Type:       questionType,
			Options:    append([]string{}, q.Options...),
			Required:   q.Required,
			Keywords:   append([]string{}, q.Keywords...),
			LengthNorm: q.LengthNorm,
		})
	}
	if err := domain.ValidateQuestions(questions); err != nil {
		return nil, invalid("%s", err)
	}

	duration := cmd.DurationMinutes
	if duration < 0 {
		return nil, invalid("duration must not be negative")
	}

	return &domain.Assessment{
		ID:              id,
		OrganizationID:  cmd.OrganizationID,
		Title:           title,
		Description:     strings.TrimSpace(cmd.Description),
		DurationMinutes: duration,
		Status:          status,
		Questions:       questions,
		CreatedBy:       cmd.CreatedBy,
	}, nil
}
