package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanKind identifies which calendar view a plan materializes.
type PlanKind string

const (
	KindTemplateWeeks PlanKind = "templateWeeks"
	KindYearlyPlan    PlanKind = "yearlyPlan"
	KindWorkoutsDone  PlanKind = "workoutsDone"
	KindArchive       PlanKind = "archive"

	// KindCurrentWeeks is a legacy alias still sent by older clients.
	// It is normalized to KindTemplateWeeks at the boundary.
	KindCurrentWeeks PlanKind = "currentWeeks"
)

// ParsePlanKind validates a client-supplied kind string and normalizes
// the legacy alias.
func ParsePlanKind(s string) (PlanKind, bool) {
	switch PlanKind(s) {
	case KindTemplateWeeks, KindCurrentWeeks:
		return KindTemplateWeeks, true
	case KindYearlyPlan:
		return KindYearlyPlan, true
	case KindWorkoutsDone:
		return KindWorkoutsDone, true
	case KindArchive:
		return KindArchive, true
	}
	return "", false
}

// Zone is a logical calendar partition. The same real-world date may carry
// independent Day rows in different zones, so overlapping views (template
// weeks vs. yearly plan) never collide.
type Zone string

const (
	ZoneA Zone = "A"
	ZoneB Zone = "B"
	ZoneC Zone = "C"
	ZoneD Zone = "D"
)

// ParseZone validates a client-supplied zone hint.
func ParseZone(s string) (Zone, bool) {
	switch Zone(s) {
	case ZoneA, ZoneB, ZoneC, ZoneD:
		return Zone(s), true
	}
	return "", false
}

// Plan is one calendar view owned by a user. Structural fields are never
// updated in place; a defective plan is deleted and rematerialized whole.
type Plan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Kind      PlanKind           `bson:"kind" json:"kind"`
	Zone      Zone               `bson:"zone" json:"zone"`
	StartDate time.Time          `bson:"startDate" json:"startDate"` // always a Monday
	EndDate   time.Time          `bson:"endDate" json:"endDate"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Weeks is populated on read paths only. Days holds the rows of lazy
	// kinds (workoutsDone, archive) that have no week scaffold.
	Weeks []Week `bson:"-" json:"weeks"`
	Days  []Day  `bson:"-" json:"days,omitempty"`
}
