package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

// ResponseRepository persists candidate submissions.
type ResponseRepository struct {
	responses *mongo.Collection
}

// NewResponseRepository binds the responses collection.
func NewResponseRepository(db *mongo.Database, collection string) *ResponseRepository {
	return &ResponseRepository{responses: db.Collection(collection)}
}

// Create inserts a submission and reflects the assigned id onto the domain
// model.
func (r *ResponseRepository) Create(ctx context.Context, response *domain.Response) error {
	orgID, err := primitive.ObjectIDFromHex(strings.TrimSpace(response.OrganizationID))
	if err != nil {
		return err
	}
	assessmentID, err := primitive.ObjectIDFromHex(strings.TrimSpace(response.AssessmentID))
	if err != nil {
		return err
	}
	invitationID, err := primitive.ObjectIDFromHex(strings.TrimSpace(response.InvitationID))
	if err != nil {
		return err
	}

	answers := make([]AnswerDocument, 0, len(response.Answers))
	for _, answer := range response.Answers {
		answers = append(answers, AnswerDocument{
			QuestionID:     answer.QuestionID,
			Text:           answer.Text,
			SelectedOption: answer.SelectedOption,
			Score:          answer.Score,
			Feedback:       append([]string{}, answer.Feedback...),
			Confidence:     answer.Confidence,
		})
	}

	submittedAt := response.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}

	doc := ResponseDocument{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		AssessmentID:   assessmentID,
		InvitationID:   invitationID,
		CandidateEmail: response.CandidateEmail,
		Answers:        answers,
		TotalScore:     response.TotalScore,
		SubmittedAt:    submittedAt,
	}

	if _, err := r.responses.InsertOne(ctx, doc); err != nil {
		return err
	}

	response.ID = doc.ID.Hex()
	response.SubmittedAt = doc.SubmittedAt
	return nil
}
