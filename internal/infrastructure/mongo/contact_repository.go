package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	adminapp "github.com/assessly-hq/assessly-services/api/internal/admin/application"
	"github.com/assessly-hq/assessly-services/api/internal/public/application"
	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

// ContactRepository persists contact-form messages. It serves both the
// public submit path and the operator inbox.
type ContactRepository struct {
	contacts *mongo.Collection
}

// NewContactRepository binds the contacts collection.
func NewContactRepository(db *mongo.Database, collection string) *ContactRepository {
	return &ContactRepository{contacts: db.Collection(collection)}
}

// Create inserts a new contact message and reflects the assigned id onto
// the domain model.
func (r *ContactRepository) Create(ctx context.Context, message *domain.ContactMessage) error {
	now := time.Now().UTC()
	createdAt := message.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	doc := ContactMessageDocument{
		ID:        primitive.NewObjectID(),
		Name:      message.Name,
		Email:     message.Email,
		Company:   message.Company,
		Message:   message.Message,
		Status:    string(message.Status),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if _, err := r.contacts.InsertOne(ctx, doc); err != nil {
		return err
	}

	message.ID = doc.ID.Hex()
	message.CreatedAt = doc.CreatedAt
	message.UpdatedAt = doc.UpdatedAt
	return nil
}

// Find lists contact messages newest-first with an optional status filter.
func (r *ContactRepository) Find(ctx context.Context, filter adminapp.ContactFilter, paging adminapp.Paging) ([]domain.ContactMessage, error) {
	mongoFilter := bson.M{}
	if status := strings.TrimSpace(filter.Status); status != "" {
		mongoFilter["status"] = status
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if paging.Limit > 0 {
		findOpts.SetLimit(int64(paging.Limit))
		if paging.Page > 1 {
			findOpts.SetSkip(int64((paging.Page - 1) * paging.Limit))
		}
	}

	cursor, err := r.contacts.Find(ctx, mongoFilter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := make([]domain.ContactMessage, 0)
	for cursor.Next(ctx) {
		var doc ContactMessageDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		messages = append(messages, mapContactMessageDocument(doc))
	}
	return messages, cursor.Err()
}

// UpdateStatus moves a contact message to a new triage state and returns
// the updated message.
func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.ContactMessage, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc ContactMessageDocument
	err = r.contacts.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	message := mapContactMessageDocument(doc)
	return &message, nil
}

func mapContactMessageDocument(doc ContactMessageDocument) domain.ContactMessage {
	return domain.ContactMessage{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Email:     doc.Email,
		Company:   doc.Company,
		Message:   doc.Message,
		Status:    domain.ContactStatus(doc.Status),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
