package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/assessly-hq/assessly-services/api/internal/public/application"
	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

// InvitationRepository persists candidate invitations.
type InvitationRepository struct {
	invitations *mongo.Collection
}

// NewInvitationRepository binds the invitations collection.
func NewInvitationRepository(db *mongo.Database, collection string) *InvitationRepository {
	return &InvitationRepository{invitations: db.Collection(collection)}
}

// Create inserts a new invitation and reflects the assigned id onto the
// domain model.
func (r *InvitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	orgID, err := primitive.ObjectIDFromHex(strings.TrimSpace(invitation.OrganizationID))
	if err != nil {
		return err
	}
	assessmentID, err := primitive.ObjectIDFromHex(strings.TrimSpace(invitation.AssessmentID))
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	createdAt := invitation.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	doc := InvitationDocument{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		AssessmentID:   assessmentID,
		CandidateEmail: invitation.CandidateEmail,
		CandidateName:  invitation.CandidateName,
		Token:          invitation.Token,
		Status:         string(invitation.Status),
		ExpiresAt:      invitation.ExpiresAt,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}

	if _, err := r.invitations.InsertOne(ctx, doc); err != nil {
		return err
	}

	invitation.ID = doc.ID.Hex()
	invitation.CreatedAt = doc.CreatedAt
	invitation.UpdatedAt = doc.UpdatedAt
	return nil
}

// FindByToken resolves a candidate token to its invitation.
func (r *InvitationRepository) FindByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, application.ErrNotFound
	}

	var doc InvitationDocument
	err := r.invitations.FindOne(ctx, bson.M{"token": token}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	invitation := mapInvitationDocument(doc)
	return &invitation, nil
}

// UpdateStatus moves an invitation to a new lifecycle state.
func (r *InvitationRepository) UpdateStatus(ctx context.Context, id string, status domain.InvitationStatus) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return application.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": time.Now().UTC(),
	}}
	result, err := r.invitations.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return application.ErrNotFound
	}
	return nil
}

func mapInvitationDocument(doc InvitationDocument) domain.Invitation {
	return domain.Invitation{
		ID:             doc.ID.Hex(),
		OrganizationID: doc.OrganizationID.Hex(),
		AssessmentID:   doc.AssessmentID.Hex(),
		CandidateEmail: doc.CandidateEmail,
		CandidateName:  doc.CandidateName,
		Token:          doc.Token,
		Status:         domain.InvitationStatus(doc.Status),
		ExpiresAt:      doc.ExpiresAt,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}
