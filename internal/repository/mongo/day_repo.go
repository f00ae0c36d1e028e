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

const dayCollectionName = "days"

// mongoDayRepository implements repository.DayRepository
type mongoDayRepository struct {
	collection *mongo.Collection
}

// NewMongoDayRepository creates a new Day repository.
func NewMongoDayRepository(db *mongo.Database) repository.DayRepository {
	return &mongoDayRepository{
		collection: db.Collection(dayCollectionName),
	}
}

// Upsert creates or refreshes the day keyed by (ownerId, date, zone).
// On an existing row only the structural fields (weekId, weekNumber,
// dayOfWeek, periodId) are refreshed; the free-form fields and defaults
// are applied on insert only, so re-materialization never clobbers
// user-entered content.
func (r *mongoDayRepository) Upsert(ctx context.Context, day *domain.Day) (*domain.Day, error) {
	if day.OwnerID == primitive.NilObjectID || day.Date.IsZero() || day.Zone == "" {
		return nil, errors.New("day requires ownerId, date, and zone")
	}
	now := time.Now().UTC()
	filter := bson.M{
		"ownerId": day.OwnerID,
		"date":    day.Date,
		"zone":    day.Zone,
	}
	update := bson.M{
		"$set": bson.M{
			"weekId":     day.WeekID,
			"weekNumber": day.WeekNumber,
			"dayOfWeek":  day.DayOfWeek,
			"periodId":   day.PeriodID,
			"updatedAt":  now,
		},
		"$setOnInsert": bson.M{
			"ownerId":       day.OwnerID,
			"date":          day.Date,
			"zone":          day.Zone,
			"weather":       domain.DefaultWeather,
			"feelingStatus": domain.DefaultFeelingStatus,
			"notes":         domain.DefaultNotes,
			"createdAt":     now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var out domain.Day
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID retrieves a single day by its ID.
func (r *mongoDayRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Day, error) {
	var day domain.Day
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// GetByOwnerZoneRange retrieves days for one owner in one zone, optionally
// bounded by an inclusive date range, sorted ascending by date. The zone
// filter is what keeps overlapping views from seeing each other's rows.
func (r *mongoDayRepository) GetByOwnerZoneRange(ctx context.Context, ownerID primitive.ObjectID, zone domain.Zone, dr repository.DateRange) ([]domain.Day, error) {
	var days []domain.Day
	filter := bson.M{"ownerId": ownerID, "zone": zone}
	if dateCond := rangeCondition(dr); len(dateCond) > 0 {
		filter["date"] = dateCond
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

// UpdateDetails updates only the free-form fields and the period tag of a
// day. Structural fields never change through this path.
func (r *mongoDayRepository) UpdateDetails(ctx context.Context, day *domain.Day) error {
	if day.ID == primitive.NilObjectID {
		return errors.New("day ID is required for update")
	}
	filter := bson.M{"_id": day.ID, "ownerId": day.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"weather":       day.Weather,
			"feelingStatus": day.FeelingStatus,
			"notes":         day.Notes,
			"periodId":      day.PeriodID,
			"updatedAt":     time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByOwnerZoneRange removes days for one owner strictly inside one
// zone and date range (never cross-zone) and reports the count.
func (r *mongoDayRepository) DeleteByOwnerZoneRange(ctx context.Context, ownerID primitive.ObjectID, zone domain.Zone, dr repository.DateRange) (int64, error) {
	filter := bson.M{"ownerId": ownerID, "zone": zone}
	if dateCond := rangeCondition(dr); len(dateCond) > 0 {
		filter["date"] = dateCond
	}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// CountByWeekIDs counts day rows attached to any of the given weeks. Used
// by the integrity check ("weeks but zero total days").
func (r *mongoDayRepository) CountByWeekIDs(ctx context.Context, weekIDs []primitive.ObjectID) (int64, error) {
	if len(weekIDs) == 0 {
		return 0, nil
	}
	return r.collection.CountDocuments(ctx, bson.M{"weekId": bson.M{"$in": weekIDs}})
}

func rangeCondition(dr repository.DateRange) bson.M {
	cond := bson.M{}
	if !dr.From.IsZero() {
		cond["$gte"] = dr.From
	}
	if !dr.To.IsZero() {
		cond["$lte"] = dr.To
	}
	return cond
}

// EnsureDayIndexes creates necessary indexes. Call during startup.
func EnsureDayIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// The critical invariant: one day row per owner, date and zone.
			// Unique so racing upserts converge on a single document.
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: 1}, {Key: "zone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "weekId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
