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

const periodCollectionName = "periods"

// mongoPeriodRepository implements repository.PeriodRepository
type mongoPeriodRepository struct {
	collection *mongo.Collection
}

// NewMongoPeriodRepository creates a new Period repository.
func NewMongoPeriodRepository(db *mongo.Database) repository.PeriodRepository {
	return &mongoPeriodRepository{
		collection: db.Collection(periodCollectionName),
	}
}

// Create inserts a new period.
func (r *mongoPeriodRepository) Create(ctx context.Context, period *domain.Period) (primitive.ObjectID, error) {
	if period.OwnerID == primitive.NilObjectID || period.Name == "" {
		return primitive.NilObjectID, errors.New("period requires ownerId and name")
	}
	period.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	period.CreatedAt = now
	period.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, period)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted period ID")
	}
	return insertedID, nil
}

// FindDefault retrieves the owner's default period, or ErrNotFound if the
// owner has none yet.
func (r *mongoPeriodRepository) FindDefault(ctx context.Context, ownerID primitive.ObjectID) (*domain.Period, error) {
	var period domain.Period
	filter := bson.M{"ownerId": ownerID, "isDefault": true}
	err := r.collection.FindOne(ctx, filter).Decode(&period)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &period, nil
}

// GetByOwnerID retrieves all periods of an owner, oldest first.
func (r *mongoPeriodRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Period, error) {
	var periods []domain.Period
	filter := bson.M{"ownerId": ownerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &periods); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return periods, nil
}

// EnsurePeriodIndexes creates necessary indexes. Call during startup.
func EnsurePeriodIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "isDefault", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
