package service

import (
	"alcyxob/training-calendar/internal/domain"
	"alcyxob/training-calendar/internal/repository"
	"alcyxob/training-calendar/internal/schedule"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUnknownPlanKind  = errors.New("unknown plan kind")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrInvalidWeekCount = errors.New("week count must be between 1 and 52")
)

// DefaultRebuildDebounce suppresses rebuilds of a plan created moments ago
// so two near-simultaneous callers do not both tear it down. It is a
// best-effort fence, not a lock; the unique indexes on plans and days are
// the actual correctness boundary.
const DefaultRebuildDebounce = 5 * time.Second

// PlanTree is the assembled Plan→Weeks→Days read model returned to
// callers. Window is populated only when the caller asked for the 3-week
// projection of a larger plan.
type PlanTree struct {
	Plan   *domain.Plan          `json:"plan"`
	Window []schedule.WindowWeek `json:"window,omitempty"`
}

// CalendarService materializes and serves calendar views. Every operation
// is an idempotent read/modify/write sequence: re-running a failed call is
// always safe.
type CalendarService interface {
	// Get resolves the kind to a recipe, materializes the scaffold on
	// first access, runs the integrity check, and returns the plan tree
	// with zone-filtered days. windowed applies the current-window
	// projection for derived 3-week views.
	Get(ctx context.Context, ownerID primitive.ObjectID, kind domain.PlanKind, zoneHint domain.Zone, forceRecreate, windowed bool) (*PlanTree, error)

	// Create materializes a plan with a caller-chosen start date (forced
	// onto its Monday) and week count, bypassing the kind-driven recipe.
	Create(ctx context.Context, ownerID primitive.ObjectID, kind domain.PlanKind, startDate time.Time, weekCount int) (*PlanTree, error)
}

// calendarService implements CalendarService.
type calendarService struct {
	planRepo    repository.PlanRepository
	weekRepo    repository.WeekRepository
	dayRepo     repository.DayRepository
	periodRepo  repository.PeriodRepository
	workoutRepo repository.WorkoutRepository

	rebuildDebounce time.Duration

	// now is injected so scheduling stays a pure function of
	// (owner, recipe, today) and tests control the clock.
	now func() time.Time
}

// NewCalendarService creates a new instance of calendarService.
func NewCalendarService(
	planRepo repository.PlanRepository,
	weekRepo repository.WeekRepository,
	dayRepo repository.DayRepository,
	periodRepo repository.PeriodRepository,
	workoutRepo repository.WorkoutRepository,
	rebuildDebounce time.Duration,
) CalendarService {
	if rebuildDebounce <= 0 {
		rebuildDebounce = DefaultRebuildDebounce
	}
	return &calendarService{
		planRepo:        planRepo,
		weekRepo:        weekRepo,
		dayRepo:         dayRepo,
		periodRepo:      periodRepo,
		workoutRepo:     workoutRepo,
		rebuildDebounce: rebuildDebounce,
		now:             time.Now,
	}
}

// === External operations ===

func (s *calendarService) Get(ctx context.Context, ownerID primitive.ObjectID, kind domain.PlanKind, zoneHint domain.Zone, forceRecreate, windowed bool) (*PlanTree, error) {
	today := schedule.Midnight(s.now())
	recipe, err := schedule.Resolve(kind, zoneHint, today)
	if err != nil {
		return nil, ErrUnknownPlanKind
	}

	plan, err := s.planRepo.GetByOwnerKindZone(ctx, ownerID, recipe.Kind, recipe.Zone)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		plan, err = s.materialize(ctx, ownerID, recipe)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		plan, err = s.ensureHealthy(ctx, plan, recipe, forceRecreate, today)
		if err != nil {
			return nil, err
		}
	}

	return s.assembleTree(ctx, plan, recipe, today, windowed)
}

func (s *calendarService) Create(ctx context.Context, ownerID primitive.ObjectID, kind domain.PlanKind, startDate time.Time, weekCount int) (*PlanTree, error) {
	if _, ok := domain.ParsePlanKind(string(kind)); !ok {
		return nil, ErrUnknownPlanKind
	}
	if weekCount < 1 || weekCount > 52 {
		return nil, ErrInvalidWeekCount
	}
	today := schedule.Midnight(s.now())
	start := schedule.MondayOf(startDate)
	recipe := schedule.Recipe{
		Kind:      kind,
		Zone:      schedule.ZoneFor(kind, ""),
		StartDate: start,
		EndDate:   start.AddDate(0, 0, weekCount*7),
		WeekCount: weekCount,
	}

	plan, err := s.materialize(ctx, ownerID, recipe)
	if err != nil {
		return nil, err
	}
	return s.assembleTree(ctx, plan, recipe, today, false)
}

// === Materialization engine ===

// materialize idempotently creates/updates the plan, week and day scaffold
// for a recipe. Every step is an upsert keyed on the store's uniqueness
// invariants, so repeated and concurrent calls converge on the same ids.
func (s *calendarService) materialize(ctx context.Context, ownerID primitive.ObjectID, recipe schedule.Recipe) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByOwnerKindZone(ctx, ownerID, recipe.Kind, recipe.Zone)
	if errors.Is(err, repository.ErrNotFound) {
		plan = &domain.Plan{
			OwnerID: ownerID,
			Kind:    recipe.Kind,
			Zone:    recipe.Zone,
			// Monday alignment holds for every kind, including the lazy
			// ones whose recipes anchor on a plain "today".
			StartDate: schedule.MondayOf(recipe.StartDate),
			EndDate:   schedule.Midnight(recipe.EndDate),
		}
		if _, err := s.planRepo.Create(ctx, plan); err != nil {
			if !errors.Is(err, repository.ErrDuplicate) {
				return nil, err
			}
			// Lost the creation race; the winner's plan is the plan.
			plan, err = s.planRepo.GetByOwnerKindZone(ctx, ownerID, recipe.Kind, recipe.Zone)
			if err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	if recipe.WeekCount == 0 {
		// Lazy kind: no eager scaffold, days appear through logging.
		return plan, nil
	}

	periodID, err := defaultPeriodID(ctx, s.periodRepo, ownerID)
	if err != nil {
		return nil, err
	}

	// Weeks ascending, days within a week ascending: ordering is for
	// determinism and debuggability, correctness rests on the unique keys.
	for i := 0; i < recipe.WeekCount; i++ {
		week, err := s.weekRepo.Upsert(ctx, plan.ID, i+1)
		if err != nil {
			return nil, fmt.Errorf("upsert week %d: %w", i+1, err)
		}
		for offset := 0; offset < 7; offset++ {
			date := recipe.StartDate.AddDate(0, 0, i*7+offset)
			day := &domain.Day{
				OwnerID:    ownerID,
				Date:       date,
				Zone:       recipe.Zone,
				DayOfWeek:  schedule.ISOWeekday(date),
				WeekNumber: week.WeekNumber,
				WeekID:     &week.ID,
				PeriodID:   periodID,
			}
			if _, err := s.dayRepo.Upsert(ctx, day); err != nil {
				return nil, fmt.Errorf("upsert day %s: %w", date.Format("2006-01-02"), err)
			}
		}
	}
	return plan, nil
}

// === Integrity & recreation guard ===

// protectedKinds are never auto-rebuilt on defect alone: a silent rebuild
// risks discarding user-entered content. Only forceRecreate rebuilds them.
func protectedKind(kind domain.PlanKind) bool {
	return kind == domain.KindTemplateWeeks || kind == domain.KindYearlyPlan
}

// ensureHealthy inspects an existing plan for defects and rebuilds it when
// the decision rules allow. A defective plan of a protected kind is
// returned as-is, still defective.
func (s *calendarService) ensureHealthy(ctx context.Context, plan *domain.Plan, recipe schedule.Recipe, forceRecreate bool, today time.Time) (*domain.Plan, error) {
	defective, err := s.isDefective(ctx, plan, recipe)
	if err != nil {
		return nil, err
	}

	rebuild := forceRecreate || (defective && !protectedKind(plan.Kind))
	if !rebuild {
		if defective {
			log.Printf("plan %s (%s) is defective but protected; returning as-is", plan.ID.Hex(), plan.Kind)
		}
		return plan, nil
	}

	// Debounce: a plan created moments ago is likely another caller's
	// fresh materialization, not a genuine defect. Skipping here only
	// avoids wasted work; racing rebuilds are still arbitrated by the
	// unique indexes.
	if s.now().UTC().Sub(plan.CreatedAt) < s.rebuildDebounce {
		log.Printf("plan %s (%s) created %s ago, within rebuild debounce; skipping rebuild",
			plan.ID.Hex(), plan.Kind, s.now().UTC().Sub(plan.CreatedAt).Round(time.Millisecond))
		return plan, nil
	}

	return s.rebuild(ctx, plan, recipe)
}

// isDefective applies the defect rules: a missing or empty week scaffold
// (for kinds that expect one) or a start date off its Monday.
func (s *calendarService) isDefective(ctx context.Context, plan *domain.Plan, recipe schedule.Recipe) (bool, error) {
	if !plan.StartDate.Equal(schedule.MondayOf(plan.StartDate)) {
		return true, nil
	}
	if recipe.WeekCount == 0 {
		return false, nil
	}
	weeks, err := s.weekRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return false, err
	}
	if len(weeks) == 0 {
		return true, nil
	}
	weekIDs := make([]primitive.ObjectID, len(weeks))
	for i, w := range weeks {
		weekIDs[i] = w.ID
	}
	dayCount, err := s.dayRepo.CountByWeekIDs(ctx, weekIDs)
	if err != nil {
		return false, err
	}
	return dayCount == 0, nil
}

// rebuild wipes the plan's scaffold (strictly scoped to its own zone and
// a kind-specific date range) and materializes it fresh.
func (s *calendarService) rebuild(ctx context.Context, plan *domain.Plan, recipe schedule.Recipe) (*domain.Plan, error) {
	from, to := schedule.CleanupRange(recipe)
	daysDeleted, err := s.dayRepo.DeleteByOwnerZoneRange(ctx, plan.OwnerID, plan.Zone, repository.DateRange{From: from, To: to})
	if err != nil {
		return nil, err
	}
	weeksDeleted, err := s.weekRepo.DeleteByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.Delete(ctx, plan.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	log.Printf("rebuilt plan %s (%s zone %s): deleted %d days, %d weeks",
		plan.ID.Hex(), plan.Kind, plan.Zone, daysDeleted, weeksDeleted)

	return s.materialize(ctx, plan.OwnerID, recipe)
}

// === Tree assembly ===

// assembleTree reads the plan back as a Plan→Weeks→Days tree. Days are
// filtered to the plan's zone and the recipe's date range; for the
// history view the recipe range already ends at today, so future days
// never leak in. Workout records are attached under their days.
func (s *calendarService) assembleTree(ctx context.Context, plan *domain.Plan, recipe schedule.Recipe, today time.Time, windowed bool) (*PlanTree, error) {
	weeks, err := s.weekRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	days, err := s.dayRepo.GetByOwnerZoneRange(ctx, plan.OwnerID, plan.Zone, repository.DateRange{
		From: recipe.StartDate,
		To:   recipe.EndDate,
	})
	if err != nil {
		return nil, err
	}

	dayIDs := make([]primitive.ObjectID, len(days))
	for i, d := range days {
		dayIDs[i] = d.ID
	}
	workoutsByDay, err := s.workoutRepo.GetByDayIDs(ctx, dayIDs)
	if err != nil {
		return nil, err
	}
	for i := range days {
		if w := workoutsByDay[days[i].ID]; w != nil {
			days[i].Workouts = w
		} else {
			days[i].Workouts = []domain.Workout{}
		}
	}

	weekIndex := make(map[primitive.ObjectID]int, len(weeks))
	for i := range weeks {
		weeks[i].Days = []domain.Day{}
		weekIndex[weeks[i].ID] = i
	}
	plan.Days = []domain.Day{}
	for _, d := range days {
		if d.WeekID != nil {
			if i, ok := weekIndex[*d.WeekID]; ok {
				weeks[i].Days = append(weeks[i].Days, d)
				continue
			}
		}
		// Lazy kinds carry days with no week scaffold.
		plan.Days = append(plan.Days, d)
	}
	plan.Weeks = weeks

	tree := &PlanTree{Plan: plan}
	if windowed {
		tree.Window = schedule.SelectCurrentWindow(weeks, today)
	}
	return tree, nil
}

// defaultPeriodID returns the owner's default period id, creating the
// shared default lazily the first time the owner needs one.
func defaultPeriodID(ctx context.Context, periodRepo repository.PeriodRepository, ownerID primitive.ObjectID) (primitive.ObjectID, error) {
	period, err := periodRepo.FindDefault(ctx, ownerID)
	if err == nil {
		return period.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return primitive.NilObjectID, err
	}
	return periodRepo.Create(ctx, &domain.Period{
		OwnerID:   ownerID,
		Name:      domain.DefaultPeriodName,
		Color:     domain.DefaultPeriodColor,
		IsDefault: true,
	})
}
