package repository

import (
	"alcyxob/training-calendar/internal/domain" // Import our defined domain models
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// DateRange bounds a day query. Both ends are inclusive; a zero Time on
// either end means unbounded on that side.
type DateRange struct {
	From time.Time
	To   time.Time
}

// PlanRepository persists calendar plans. A plan's structural identity is
// the tuple (ownerId, kind, zone); the store enforces it as unique so
// racing creators converge on one document.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	GetByOwnerKindZone(ctx context.Context, ownerID primitive.ObjectID, kind domain.PlanKind, zone domain.Zone) (*domain.Plan, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WeekRepository persists plan weeks, upserted on (planId, weekNumber).
type WeekRepository interface {
	Upsert(ctx context.Context, planID primitive.ObjectID, weekNumber int) (*domain.Week, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Week, error)
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error)
}

// DayRepository persists day rows, upserted on (ownerId, date, zone) —
// the uniqueness constraint that arbitrates concurrent materializers.
type DayRepository interface {
	Upsert(ctx context.Context, day *domain.Day) (*domain.Day, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Day, error)
	GetByOwnerZoneRange(ctx context.Context, ownerID primitive.ObjectID, zone domain.Zone, r DateRange) ([]domain.Day, error)
	UpdateDetails(ctx context.Context, day *domain.Day) error
	DeleteByOwnerZoneRange(ctx context.Context, ownerID primitive.ObjectID, zone domain.Zone, r DateRange) (int64, error)
	CountByWeekIDs(ctx context.Context, weekIDs []primitive.ObjectID) (int64, error)
}

// PeriodRepository persists the externally-owned categorization entity.
// The engine only needs the default-period contract.
type PeriodRepository interface {
	Create(ctx context.Context, period *domain.Period) (primitive.ObjectID, error)
	FindDefault(ctx context.Context, ownerID primitive.ObjectID) (*domain.Period, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Period, error)
}

// WorkoutRepository is the attach boundary of the content subsystem: the
// engine creates attachment records when sessions are logged and loads
// them when assembling plan trees, nothing more.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByDayIDs(ctx context.Context, dayIDs []primitive.ObjectID) (map[primitive.ObjectID][]domain.Workout, error)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}
