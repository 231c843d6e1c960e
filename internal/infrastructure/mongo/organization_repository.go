package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/assessly-hq/assessly-services/api/internal/billing"
	"github.com/assessly-hq/assessly-services/api/internal/public/application"
	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

// OrganizationRepository persists tenants and serves as the billing sync
// target.
type OrganizationRepository struct {
	orgs *mongo.Collection
}

// NewOrganizationRepository binds the organizations collection.
func NewOrganizationRepository(db *mongo.Database, collection string) *OrganizationRepository {
	return &OrganizationRepository{orgs: db.Collection(collection)}
}

// Create inserts a new organization and reflects the assigned id onto the
// domain model.
func (r *OrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	now := time.Now().UTC()
	createdAt := org.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := org.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	doc := OrganizationDocument{
		ID:                 primitive.NewObjectID(),
		Name:               org.Name,
		Plan:               org.Plan,
		SubscriptionStatus: org.SubscriptionStatus,
		SubscriptionID:     org.SubscriptionID,
		CurrentPeriodEnd:   org.CurrentPeriodEnd,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}

	if _, err := r.orgs.InsertOne(ctx, doc); err != nil {
		return err
	}

	org.ID = doc.ID.Hex()
	org.CreatedAt = doc.CreatedAt
	org.UpdatedAt = doc.UpdatedAt
	return nil
}

// FindByID looks up an organization by document id.
func (r *OrganizationRepository) FindByID(ctx context.Context, id string) (*domain.Organization, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrNotFound
	}
	var doc OrganizationDocument
	err = r.orgs.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	org := mapOrganizationDocument(doc)
	return &org, nil
}

// UpdateSubscription overwrites the subscription fields of one organization
// and reports the match count. A malformed or unknown organization id
// matches nothing; the caller decides whether that is worth logging.
func (r *OrganizationRepository) UpdateSubscription(ctx context.Context, organizationID string, state billing.SubscriptionState) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(organizationID))
	if err != nil {
		return 0, nil
	}

	update := bson.M{"$set": bson.M{
		"plan":               state.Plan,
		"subscriptionStatus": state.Status,
		"subscriptionId":     state.SubscriptionID,
		"currentPeriodEnd":   state.PeriodEnd,
		"updatedAt":          time.Now().UTC(),
	}}

	result, err := r.orgs.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func mapOrganizationDocument(doc OrganizationDocument) domain.Organization {
	return domain.Organization{
		ID:                 doc.ID.Hex(),
		Name:               doc.Name,
		Plan:               doc.Plan,
		SubscriptionStatus: doc.SubscriptionStatus,
		SubscriptionID:     doc.SubscriptionID,
		CurrentPeriodEnd:   doc.CurrentPeriodEnd,
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
	}
}
