package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/assessly-hq/assessly-services/api/internal/admin/domain"
)

// StatsRepository aggregates platform-wide counters for the operator
// dashboard.
type StatsRepository struct {
	users       *mongo.Collection
	orgs        *mongo.Collection
	assessments *mongo.Collection
	responses   *mongo.Collection
}

// NewStatsRepository binds the collections the snapshot reads from.
func NewStatsRepository(db *mongo.Database, users, orgs, assessments, responses string) *StatsRepository {
	return &StatsRepository{
		users:       db.Collection(users),
		orgs:        db.Collection(orgs),
		assessments: db.Collection(assessments),
		responses:   db.Collection(responses),
	}
}

// Collect counts the platform totals and groups organizations by plan.
func (r *StatsRepository) Collect(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{PlanBreakdown: map[string]int64{}}

	var err error
	if stats.TotalUsers, err = r.users.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.TotalOrganizations, err = r.orgs.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.TotalAssessments, err = r.assessments.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.TotalResponses, err = r.responses.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -30)
	if stats.NewUsersLast30Days, err = r.users.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": since}}); err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$plan",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.orgs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row struct {
			Plan  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		plan := row.Plan
		if plan == "" {
			plan = "Free"
		}
		stats.PlanBreakdown[plan] += row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
