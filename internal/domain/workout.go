package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a logged training session attached under a Day. Its content
// model (sports, movement blocks, laps) lives in the content subsystem;
// the calendar engine only creates the attachment record when a session is
// logged and loads records when assembling a plan tree.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayID     primitive.ObjectID `bson:"dayId" json:"dayId"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name      string             `bson:"name" json:"name"`
	Sport     string             `bson:"sport,omitempty" json:"sport,omitempty"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
