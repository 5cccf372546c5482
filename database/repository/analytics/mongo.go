// File: database/repository/analytics/mongo.go
package analyticsRepo

import (
	"context"
	"time"

	"studiobook/database"
	"studiobook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoAnalyticsRepo struct {
	coll *mongo.Collection
}

// NewMongoAnalyticsRepo constructs the MongoDB-backed analytics sink.
func NewMongoAnalyticsRepo() AnalyticsRepository {
	db := database.MongoClient.Database("studiobook")
	return &mongoAnalyticsRepo{
		coll: db.Collection("events"),
	}
}

func (r *mongoAnalyticsRepo) Insert(ctx context.Context, event models.AnalyticsEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, event)
	return err
}
