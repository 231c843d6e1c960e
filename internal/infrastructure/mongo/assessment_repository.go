package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/assessly-hq/assessly-services/api/internal/public/application"
	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

// AssessmentRepository persists assessments with their embedded questions.
type AssessmentRepository struct {
	assessments *mongo.Collection
}

// NewAssessmentRepository binds the assessments collection.
func NewAssessmentRepository(db *mongo.Database, collection string) *AssessmentRepository {
	return &AssessmentRepository{assessments: db.Collection(collection)}
}

// Find translates the filter into a Mongo query scoped to one organization.
// Keyword matches title, description and question text case-insensitively.
func (r *AssessmentRepository) Find(ctx context.Context, organizationID string, filter application.AssessmentFilter, paging application.Paging) ([]domain.Assessment, error) {
	orgID, err := primitive.ObjectIDFromHex(strings.TrimSpace(organizationID))
	if err != nil {
		return nil, application.ErrNotFound
	}

	mongoFilter := bson.M{"organizationId": orgID}
	if status := strings.TrimSpace(filter.Status); status != "" {
		mongoFilter["status"] = status
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
		mongoFilter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"questions.text": pattern},
		}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	if paging.Limit > 0 {
		findOpts.SetLimit(int64(paging.Limit))
		if paging.Page > 1 {
			findOpts.SetSkip(int64((paging.Page - 1) * paging.Limit))
		}
	}

	cursor, err := r.assessments.Find(ctx, mongoFilter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assessments := make([]domain.Assessment, 0)
	for cursor.Next(ctx) {
		var doc AssessmentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		assessments = append(assessments, mapAssessmentDocument(doc))
	}
	return assessments, cursor.Err()
}

// FindByID loads one assessment, enforcing the organization scope in the
// query itself so a foreign id behaves like a miss.
func (r *AssessmentRepository) FindByID(ctx context.Context, organizationID, id string) (*domain.Assessment, error) {
	orgID, err := primitive.ObjectIDFromHex(strings.TrimSpace(organizationID))
	if err != nil {
		return nil, application.ErrNotFound
	}
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrNotFound
	}

	var doc AssessmentDocument
	err = r.assessments.FindOne(ctx, bson.M{"_id": objectID, "organizationId": orgID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	assessment := mapAssessmentDocument(doc)
	return &assessment, nil
}

// Create inserts a new assessment and reflects the assigned id onto the
// domain model.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *domain.Assessment) error {
	doc, err := mapDomainAssessmentToDocument(assessment)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.assessments.InsertOne(ctx, doc); err != nil {
		return err
	}
	assessment.ID = doc.ID.Hex()
	return nil
}

// Update replaces the stored assessment, keeping the organization scope in
// the match filter.
func (r *AssessmentRepository) Update(ctx context.Context, assessment *domain.Assessment) error {
	doc, err := mapDomainAssessmentToDocument(assessment)
	if err != nil {
		return err
	}
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(assessment.ID))
	if err != nil {
		return application.ErrNotFound
	}
	doc.ID = objectID

	result, err := r.assessments.ReplaceOne(ctx, bson.M{"_id": objectID, "organizationId": doc.OrganizationID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return application.ErrNotFound
	}
	return nil
}

// Delete removes one assessment within the organization scope.
func (r *AssessmentRepository) Delete(ctx context.Context, organizationID, id string) error {
	orgID, err := primitive.ObjectIDFromHex(strings.TrimSpace(organizationID))
	if err != nil {
		return application.ErrNotFound
	}
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return application.ErrNotFound
	}

	result, err := r.assessments.DeleteOne(ctx, bson.M{"_id": objectID, "organizationId": orgID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return application.ErrNotFound
	}
	return nil
}

func mapAssessmentDocument(doc AssessmentDocument) domain.Assessment {
	questions := make([]domain.Question, 0, len(doc.Questions))
	for _, q := range doc.Questions {
		questions = append(questions, domain.Question{
			ID:         q.ID,
			Text:       q.Text,
			Type:       domain.QuestionType(q.Type),
			Options:    append([]string{}, q.Options...),
			Required:   q.Required,
			Keywords:   append([]string{}, q.Keywords...),
			LengthNorm: q.LengthNorm,
		})
	}

	return domain.Assessment{
		ID:              doc.ID.Hex(),
		OrganizationID:  doc.OrganizationID.Hex(),
		Title:           doc.Title,
		Description:     doc.Description,
		DurationMinutes: doc.DurationMinutes,
		Status:          domain.AssessmentStatus(doc.Status),
		Questions:       questions,
		CreatedBy:       doc.CreatedBy,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}

func mapDomainAssessmentToDocument(assessment *domain.Assessment) (AssessmentDocument, error) {
	orgID, err := primitive.ObjectIDFromHex(strings.TrimSpace(assessment.OrganizationID))
	if err != nil {
		return AssessmentDocument{}, err
	}

	now := time.Now().UTC()
	createdAt := assessment.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := assessment.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	questions := make([]QuestionDocument, 0, len(assessment.Questions))
	for _, q := range assessment.Questions {
		questions = append(questions, QuestionDocument{
			ID:         q.ID,
			Text:       q.Text,
			Type:       string(q.Type),
			Options:    append([]string{}, q.Options...),
			Required:   q.Required,
			Keywords:   append([]string{}, q.Keywords...),
			LengthNorm: q.LengthNorm,
		})
	}

	return AssessmentDocument{
		OrganizationID:  orgID,
		Title:           assessment.Title,
		Description:     assessment.Description,
		DurationMinutes: assessment.DurationMinutes,
		Status:          string(assessment.Status),
		Questions:       questions,
		CreatedBy:       assessment.CreatedBy,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}
