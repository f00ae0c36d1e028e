package service

import (
	"alcyxob/training-calendar/internal/domain"
	"alcyxob/training-calendar/internal/repository"
	"alcyxob/training-calendar/internal/schedule"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrWorkoutNameRequired = errors.New("workout name is required")
)

// WorkoutService is the attach boundary of the content subsystem. Logging
// a session is how day rows come into existence for the lazy plan kinds:
// the day is upserted on (owner, date, zone) and the workout record hangs
// off its id. The engine never edits workout content beyond this.
type WorkoutService interface {
	LogWorkout(ctx context.Context, ownerID primitive.ObjectID, date time.Time, name, sport, notes string) (*domain.Day, error)
}

// workoutService implements WorkoutService.
type workoutService struct {
	planRepo    repository.PlanRepository
	dayRepo     repository.DayRepository
	periodRepo  repository.PeriodRepository
	workoutRepo repository.WorkoutRepository

	now func() time.Time
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	planRepo repository.PlanRepository,
	dayRepo repository.DayRepository,
	periodRepo repository.PeriodRepository,
	workoutRepo repository.WorkoutRepository,
) WorkoutService {
	return &workoutService{
		planRepo:    planRepo,
		dayRepo:     dayRepo,
		periodRepo:  periodRepo,
		workoutRepo: workoutRepo,
		now:         time.Now,
	}
}

// LogWorkout records a completed session on a date in the history zone.
func (s *workoutService) LogWorkout(ctx context.Context, ownerID primitive.ObjectID, date time.Time, name, sport, notes string) (*domain.Day, error) {
	if name == "" {
		return nil, ErrWorkoutNameRequired
	}
	today := schedule.Midnight(s.now())

	// Make sure the history plan exists so the logged day belongs to a
	// view. Lazy kinds scaffold no weeks; the plan row is all there is.
	recipe, err := schedule.Resolve(domain.KindWorkoutsDone, "", today)
	if err != nil {
		return nil, err
	}
	if err := s.ensurePlan(ctx, ownerID, recipe); err != nil {
		return nil, err
	}

	periodID, err := defaultPeriodID(ctx, s.periodRepo, ownerID)
	if err != nil {
		return nil, err
	}

	logged := schedule.Midnight(date)
	day, err := s.dayRepo.Upsert(ctx, &domain.Day{
		OwnerID:   ownerID,
		Date:      logged,
		Zone:      recipe.Zone,
		DayOfWeek: schedule.ISOWeekday(logged),
		PeriodID:  periodID,
	})
	if err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		DayID:   day.ID,
		OwnerID: ownerID,
		Name:    name,
		Sport:   sport,
		Notes:   notes,
	}
	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}

	grouped, err := s.workoutRepo.GetByDayIDs(ctx, []primitive.ObjectID{day.ID})
	if err != nil {
		return nil, err
	}
	day.Workouts = grouped[day.ID]
	return day, nil
}

func (s *workoutService) ensurePlan(ctx context.Context, ownerID primitive.ObjectID, recipe schedule.Recipe) error {
	_, err := s.planRepo.GetByOwnerKindZone(ctx, ownerID, recipe.Kind, recipe.Zone)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	_, err = s.planRepo.Create(ctx, &domain.Plan{
		OwnerID:   ownerID,
		Kind:      recipe.Kind,
		Zone:      recipe.Zone,
		StartDate: schedule.MondayOf(recipe.StartDate),
		EndDate:   schedule.Midnight(recipe.EndDate),
	})
	if errors.Is(err, repository.ErrDuplicate) {
		// Another logger created it first.
		return nil
	}
	return err
}
