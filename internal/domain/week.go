package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Week is an ordered subdivision of a Plan. WeekNumber is 1-based and
// unique within its plan; the pair (PlanID, WeekNumber) is the upsert key.
type Week struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID     primitive.ObjectID `bson:"planId" json:"planId"`
	WeekNumber int                `bson:"weekNumber" json:"weekNumber"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Days is populated on read paths only, filtered to the plan's zone.
	Days []Day `bson:"-" json:"days"`
}
