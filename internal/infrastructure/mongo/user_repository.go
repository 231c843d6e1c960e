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

// UserRepository persists dashboard accounts.
type UserRepository struct {
	users *mongo.Collection
}

// NewUserRepository binds the users collection.
func NewUserRepository(db *mongo.Database, collection string) *UserRepository {
	return &UserRepository{users: db.Collection(collection)}
}

// Create inserts a new user and reflects the assigned id onto the domain
// model.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	orgID, err := primitive.ObjectIDFromHex(strings.TrimSpace(user.OrganizationID))
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := user.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	doc := UserDocument{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Email:          user.Email,
		Name:           user.Name,
		PasswordHash:   user.PasswordHash,
		Role:           string(user.Role),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrEmailTaken
		}
		return err
	}

	user.ID = doc.ID.Hex()
	user.CreatedAt = doc.CreatedAt
	user.UpdatedAt = doc.UpdatedAt
	return nil
}

// FindByEmail looks up a user by canonical (lowercase) email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc UserDocument
	err := r.users.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

// FindByID looks up a user by document id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrNotFound
	}
	var doc UserDocument
	err = r.users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, application.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

func mapUserDocument(doc UserDocument) domain.User {
	return domain.User{
		ID:             doc.ID.Hex(),
		OrganizationID: doc.OrganizationID.Hex(),
		Email:          doc.Email,
		Name:           doc.Name,
		PasswordHash:   doc.PasswordHash,
		Role:           domain.Role(doc.Role),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}
