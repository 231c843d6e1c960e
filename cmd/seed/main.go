package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/assessly-hq/assessly-services/api/internal/config"
	mongodoc "github.com/assessly-hq/assessly-services/api/internal/infrastructure/mongo"
	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

// Seeds a demo tenant: organization, owner account, a platform admin, one
// published assessment and a pending invitation. Intended for local
// development and staging demos only.
func main() {
	var (
		ownerEmail    = flag.String("owner-email", "owner@example.com", "email for the demo owner account")
		adminEmail    = flag.String("admin-email", "admin@assessly.app", "email for the platform admin account")
		password      = flag.String("password", "changeme123", "password for the seeded accounts")
		dropExisting  = flag.Bool("drop", false, "drop the seeded collections first")
		inviteCandidt = flag.String("candidate-email", "candidate@example.com", "email for the demo invitation")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("disconnect errored: %v", err)
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	if *dropExisting {
		for _, name := range []string{cfg.UserCollection, cfg.OrganizationCollection, cfg.AssessmentCollection, cfg.InvitationCollection, cfg.ResponseCollection} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				log.Fatalf("failed to drop %s: %v", name, err)
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now().UTC()

	org := mongodoc.OrganizationDocument{
		ID:        primitive.NewObjectID(),
		Name:      "Demo Org",
		Plan:      "Free",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.Collection(cfg.OrganizationCollection).InsertOne(ctx, org); err != nil {
		log.Fatalf("failed to seed organization: %v", err)
	}

	users := []mongodoc.UserDocument{
		{
			ID:             primitive.NewObjectID(),
			OrganizationID: org.ID,
			Email:          *ownerEmail,
			Name:           "Demo Owner",
			PasswordHash:   string(hash),
			Role:           string(domain.RoleOwner),
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             primitive.NewObjectID(),
			OrganizationID: org.ID,
			Email:          *adminEmail,
			Name:           "Platform Admin",
			PasswordHash:   string(hash),
			Role:           string(domain.RoleAdmin),
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
	for _, user := range users {
		if _, err := db.Collection(cfg.UserCollection).InsertOne(ctx, user); err != nil {
			log.Fatalf("failed to seed user %s: %v", user.Email, err)
		}
	}

	assessment := mongodoc.AssessmentDocument{
		ID:              primitive.NewObjectID(),
		OrganizationID:  org.ID,
		Title:           "Backend Engineer Screen",
		Description:     "A short screen covering API design and operational habits.",
		DurationMinutes: 45,
		Status:          string(domain.AssessmentActive),
		Questions: []mongodoc.QuestionDocument{
			{
				ID:         uuid.NewString(),
				Text:       "Describe how you would design a rate limiter for a public API.",
				Type:       string(domain.QuestionText),
				Required:   true,
				Keywords:   []string{"token bucket", "sliding window", "redis", "headers"},
				LengthNorm: 600,
			},
			{
				ID:       uuid.NewString(),
				Text:     "Which database would you reach for first on a new service?",
				Type:     string(domain.QuestionChoice),
				Options:  []string{"PostgreSQL", "MongoDB", "SQLite", "Depends on the data"},
				Required: true,
			},
			{
				ID:         uuid.NewString(),
				Text:       "Tell us about a production incident you handled.",
				Type:       string(domain.QuestionText),
				Keywords:   []string{"monitoring", "rollback", "postmortem"},
				LengthNorm: 400,
			},
		},
		CreatedBy: users[0].ID.Hex(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.Collection(cfg.AssessmentCollection).InsertOne(ctx, assessment); err != nil {
		log.Fatalf("failed to seed assessment: %v", err)
	}

	invitation := mongodoc.InvitationDocument{
		ID:             primitive.NewObjectID(),
		OrganizationID: org.ID,
		AssessmentID:   assessment.ID,
		CandidateEmail: *inviteCandidt,
		CandidateName:  "Demo Candidate",
		Token:          uuid.NewString(),
		Status:         string(domain.InvitationPending),
		ExpiresAt:      now.Add(14 * 24 * time.Hour),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := db.Collection(cfg.InvitationCollection).InsertOne(ctx, invitation); err != nil {
		log.Fatalf("failed to seed invitation: %v", err)
	}

	count, err := db.Collection(cfg.UserCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("failed to count users: %v", err)
	}

	fmt.Printf("seeded organization %s with %d users\n", org.ID.Hex(), count)
	fmt.Printf("owner login:     %s / %s\n", *ownerEmail, *password)
	fmt.Printf("admin login:     %s / %s\n", *adminEmail, *password)
	fmt.Printf("invitation token: %s\n", invitation.Token)
}
