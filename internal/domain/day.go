package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default values applied when a Day row is first created.
const (
	DefaultWeather       = ""
	DefaultFeelingStatus = "5"
	DefaultNotes         = ""
)

// Day is one calendar date within one zone for one owner. The tuple
// (OwnerID, Date, Zone) is unique store-wide; it is the upsert key and the
// only hard safety net against duplicate creation under concurrent callers.
type Day struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Date    time.Time          `bson:"date" json:"date"`
	Zone    Zone               `bson:"zone" json:"zone"`

	// DayOfWeek is 1=Monday .. 7=Sunday.
	DayOfWeek int `bson:"dayOfWeek" json:"dayOfWeek"`

	// WeekNumber is a denormalized copy of the parent week's number.
	// Days in lazy plans (workoutsDone, archive) carry 0 and a nil WeekID
	// until an eager materialization adopts them.
	WeekNumber int                 `bson:"weekNumber" json:"weekNumber"`
	WeekID     *primitive.ObjectID `bson:"weekId,omitempty" json:"weekId,omitempty"`

	PeriodID primitive.ObjectID `bson:"periodId" json:"periodId"`

	Weather       string `bson:"weather" json:"weather"`
	FeelingStatus string `bson:"feelingStatus" json:"feelingStatus"`
	Notes         string `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// Workouts are owned by the content subsystem and attached under the
	// day's id. The calendar engine only loads them on read paths.
	Workouts []Workout `bson:"-" json:"workouts"`
}
