package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// NotificationFailureStore records outbound notifications that exhausted
// their retries, so an operator can replay them later.
type NotificationFailureStore struct {
	failures *mongo.Collection
	logger   *zap.Logger
}

// NewNotificationFailureStore binds the failed notifications collection.
func NewNotificationFailureStore(db *mongo.Database, collection string, logger *zap.Logger) *NotificationFailureStore {
	return &NotificationFailureStore{failures: db.Collection(collection), logger: logger}
}

// RecordFailure persists one failed delivery. Persistence errors are only
// logged; the original send error is what the caller reports.
func (s *NotificationFailureStore) RecordFailure(ctx context.Context, target, recipient, subject string, sendErr error, attempts int) {
	now := time.Now().UTC()
	doc := bson.M{
		"target":      target,
		"recipient":   recipient,
		"subject":     subject,
		"error":       sendErr.Error(),
		"attempts":    attempts,
		"status":      "pending",
		"createdAt":   now,
		"lastTriedAt": now,
	}

	if _, err := s.failures.InsertOne(ctx, doc); err != nil {
		s.logger.Error("failed to persist notification failure",
			zap.String("target", target),
			zap.String("recipient", recipient),
			zap.Error(err))
	}
}
