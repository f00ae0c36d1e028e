package mongo

import (
	"alcyxob/training-calendar/internal/domain"
	"alcyxob/training-calendar/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const weekCollectionName = "weeks"

// mongoWeekRepository implements repository.WeekRepository
type mongoWeekRepository struct {
	collection *mongo.Collection
}

// NewMongoWeekRepository creates a new Week repository.
func NewMongoWeekRepository(db *mongo.Database) repository.WeekRepository {
	return &mongoWeekRepository{
		collection: db.Collection(weekCollectionName),
	}
}

// Upsert creates or refreshes the week keyed by (planId, weekNumber) and
// returns the resulting document. Re-running materialization therefore
// yields the same week ids.
func (r *mongoWeekRepository) Upsert(ctx context.Context, planID primitive.ObjectID, weekNumber int) (*domain.Week, error) {
	if planID == primitive.NilObjectID || weekNumber < 1 {
		return nil, errors.New("week requires planId and a 1-based weekNumber")
	}
	now := time.Now().UTC()
	filter := bson.M{"planId": planID, "weekNumber": weekNumber}
	update := bson.M{
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"planId": planID, "weekNumber": weekNumber, "createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var week domain.Week
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&week); err != nil {
		return nil, err
	}
	return &week, nil
}

// GetByPlanID retrieves all weeks of a plan in ascending week order.
func (r *mongoWeekRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Week, error) {
	var weeks []domain.Week
	filter := bson.M{"planId": planID}
	findOptions := options.Find().SetSort(bson.D{{Key: "weekNumber", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &weeks); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return weeks, nil
}

// DeleteByPlanID removes every week under a plan and reports how many
// documents went, for rebuild observability.
func (r *mongoWeekRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureWeekIndexes creates necessary indexes. Call during startup.
func EnsureWeekIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Upsert key for materialization.
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "weekNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
