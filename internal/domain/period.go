package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default period created lazily for an owner who has none, shared across
// all of that owner's plans.
const (
	DefaultPeriodName  = "Base"
	DefaultPeriodColor = "#9e9e9e"
)

// Period is a color/category tag referenced by Day rows. The entity itself
// is owned outside the scheduling engine; the engine only guarantees every
// Day has a valid PeriodID.
type Period struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name      string             `bson:"name" json:"name"`
	Color     string             `bson:"color" json:"color"`
	IsDefault bool               `bson:"isDefault" json:"isDefault"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
