package service

import (
	"context"
	"sync"
	"time"

	"alcyxob/training-calendar/internal/domain"
	"alcyxob/training-calendar/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is a shared in-memory backing store for the fake repositories.
// It enforces the same uniqueness constraints the Mongo indexes do, since
// those constraints are what the engine's idempotence rests on.
type memStore struct {
	mu       sync.Mutex
	plans    []*domain.Plan
	weeks    []*domain.Week
	days     []*domain.Day
	periods  []*domain.Period
	workouts []*domain.Workout
	users    []*domain.User

	now func() time.Time
}

func newMemStore() *memStore {
	return &memStore{now: time.Now}
}

// --- PlanRepository ---

type memPlanRepo struct{ s *memStore }

func (r *memPlanRepo) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.plans {
		if p.OwnerID == plan.OwnerID && p.Kind == plan.Kind && p.Zone == plan.Zone {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	plan.ID = primitive.NewObjectID()
	now := r.s.now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	stored := *plan
	r.s.plans = append(r.s.plans, &stored)
	return plan.ID, nil
}

func (r *memPlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.plans {
		if p.ID == id {
			out := *p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memPlanRepo) GetByOwnerKindZone(ctx context.Context, ownerID primitive.ObjectID, kind domain.PlanKind, zone domain.Zone) (*domain.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.plans {
		if p.OwnerID == ownerID && p.Kind == kind && p.Zone == zone {
			out := *p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memPlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.plans {
		if p.ID == id {
			r.s.plans = append(r.s.plans[:i], r.s.plans[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- WeekRepository ---

type memWeekRepo struct{ s *memStore }

func (r *memWeekRepo) Upsert(ctx context.Context, planID primitive.ObjectID, weekNumber int) (*domain.Week, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now().UTC()
	for _, w := range r.s.weeks {
		if w.PlanID == planID && w.WeekNumber == weekNumber {
			w.UpdatedAt = now
			out := *w
			return &out, nil
		}
	}
	week := &domain.Week{
		ID:         primitive.NewObjectID(),
		PlanID:     planID,
		WeekNumber: weekNumber,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.s.weeks = append(r.s.weeks, week)
	out := *week
	return &out, nil
}

func (r *memWeekRepo) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Week, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Week
	for n := 1; ; n++ {
		found := false
		for _, w := range r.s.weeks {
			if w.PlanID == planID && w.WeekNumber == n {
				out = append(out, *w)
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return out, nil
}

func (r *memWeekRepo) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var kept []*domain.Week
	var deleted int64
	for _, w := range r.s.weeks {
		if w.PlanID == planID {
			deleted++
			continue
		}
		kept = append(kept, w)
	}
	r.s.weeks = kept
	return deleted, nil
}

// --- DayRepository ---

type memDayRepo struct{ s *memStore }

func (r *memDayRepo) Upsert(ctx context.Context, day *domain.Day) (*domain.Day, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now().UTC()
	for _, d := range r.s.days {
		if d.OwnerID == day.OwnerID && d.Date.Equal(day.Date) && d.Zone == day.Zone {
			d.WeekID = day.WeekID
			d.WeekNumber = day.WeekNumber
			d.DayOfWeek = day.DayOfWeek
			d.PeriodID = day.PeriodID
			d.UpdatedAt = now
			out := *d
			return &out, nil
		}
	}
	stored := *day
	stored.ID = primitive.NewObjectID()
	stored.Weather = domain.DefaultWeather
	stored.FeelingStatus = domain.DefaultFeelingStatus
	stored.Notes = domain.DefaultNotes
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.days = append(r.s.days, &stored)
	out := stored
	return &out, nil
}

func (r *memDayRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Day, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.days {
		if d.ID == id {
			out := *d
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func inRange(date time.Time, dr repository.DateRange) bool {
	if !dr.From.IsZero() && date.Before(dr.From) {
		return false
	}
	if !dr.To.IsZero() && date.After(dr.To) {
		return false
	}
	return true
}

func (r *memDayRepo) GetByOwnerZoneRange(ctx context.Context, ownerID primitive.ObjectID, zone domain.Zone, dr repository.DateRange) ([]domain.Day, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Day
	for _, d := range r.s.days {
		if d.OwnerID == ownerID && d.Zone == zone && inRange(d.Date, dr) {
			out = append(out, *d)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Date.Before(out[i].Date) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *memDayRepo) UpdateDetails(ctx context.Context, day *domain.Day) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.days {
		if d.ID == day.ID && d.OwnerID == day.OwnerID {
			d.Weather = day.Weather
			d.FeelingStatus = day.FeelingStatus
			d.Notes = day.Notes
			d.PeriodID = day.PeriodID
			d.UpdatedAt = r.s.now().UTC()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memDayRepo) DeleteByOwnerZoneRange(ctx context.Context, ownerID primitive.ObjectID, zone domain.Zone, dr repository.DateRange) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var kept []*domain.Day
	var deleted int64
	for _, d := range r.s.days {
		if d.OwnerID == ownerID && d.Zone == zone && inRange(d.Date, dr) {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	r.s.days = kept
	return deleted, nil
}

func (r *memDayRepo) CountByWeekIDs(ctx context.Context, weekIDs []primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make(map[primitive.ObjectID]bool, len(weekIDs))
	for _, id := range weekIDs {
		ids[id] = true
	}
	var count int64
	for _, d := range r.s.days {
		if d.WeekID != nil && ids[*d.WeekID] {
			count++
		}
	}
	return count, nil
}

// --- PeriodRepository ---

type memPeriodRepo struct{ s *memStore }

func (r *memPeriodRepo) Create(ctx context.Context, period *domain.Period) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	period.ID = primitive.NewObjectID()
	now := r.s.now().UTC()
	period.CreatedAt = now
	period.UpdatedAt = now
	stored := *period
	r.s.periods = append(r.s.periods, &stored)
	return period.ID, nil
}

func (r *memPeriodRepo) FindDefault(ctx context.Context, ownerID primitive.ObjectID) (*domain.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.periods {
		if p.OwnerID == ownerID && p.IsDefault {
			out := *p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memPeriodRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Period
	for _, p := range r.s.periods {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// --- WorkoutRepository ---

type memWorkoutRepo struct{ s *memStore }

func (r *memWorkoutRepo) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	workout.ID = primitive.NewObjectID()
	now := r.s.now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	stored := *workout
	r.s.workouts = append(r.s.workouts, &stored)
	return workout.ID, nil
}

func (r *memWorkoutRepo) GetByDayIDs(ctx context.Context, dayIDs []primitive.ObjectID) (map[primitive.ObjectID][]domain.Workout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make(map[primitive.ObjectID]bool, len(dayIDs))
	for _, id := range dayIDs {
		ids[id] = true
	}
	grouped := make(map[primitive.ObjectID][]domain.Workout)
	for _, w := range r.s.workouts {
		if ids[w.DayID] {
			grouped[w.DayID] = append(grouped[w.DayID], *w)
		}
	}
	return grouped, nil
}

// --- UserRepository ---

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	now := r.s.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.s.users = append(r.s.users, &stored)
	return user.ID, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}
