package schedule

import (
	"fmt"
	"time"

	"alcyxob/training-calendar/internal/domain"
)

// Recipe is the concrete materialization plan for one calendar view:
// which date range to cover, how many weeks to scaffold eagerly, and which
// zone partition the view lives in.
type Recipe struct {
	Kind      domain.PlanKind
	Zone      domain.Zone
	StartDate time.Time
	EndDate   time.Time

	// WeekCount is the number of weeks to scaffold eagerly. Zero means the
	// kind is lazy: day rows appear only when content is logged.
	WeekCount int
}

// fixedZones is the single source of truth for which zone each non-template
// kind occupies. TemplateWeeks takes its zone from the caller's hint.
var fixedZones = map[domain.PlanKind]domain.Zone{
	domain.KindYearlyPlan:   domain.ZoneB,
	domain.KindWorkoutsDone: domain.ZoneC,
	domain.KindArchive:      domain.ZoneD,
}

// ZoneFor returns the zone a plan kind occupies. For TemplateWeeks the
// caller-supplied hint wins (restricted to A/B/C, defaulting to A); every
// other kind has a fixed zone and ignores the hint.
func ZoneFor(kind domain.PlanKind, hint domain.Zone) domain.Zone {
	if z, ok := fixedZones[kind]; ok {
		return z
	}
	switch hint {
	case domain.ZoneA, domain.ZoneB, domain.ZoneC:
		return hint
	}
	return domain.ZoneA
}

// Resolve maps a plan kind (plus optional zone hint) to its recipe,
// evaluated relative to today. An unrecognized kind is a programming error
// at this level; callers validate kinds at the API boundary.
func Resolve(kind domain.PlanKind, hint domain.Zone, today time.Time) (Recipe, error) {
	today = Midnight(today)
	switch kind {
	case domain.KindTemplateWeeks, domain.KindCurrentWeeks:
		// One week back from the current Monday, so the 3-week window
		// always spans previous/current/next week.
		start := MondayOf(today).AddDate(0, 0, -7)
		return Recipe{
			Kind:      domain.KindTemplateWeeks,
			Zone:      ZoneFor(domain.KindTemplateWeeks, hint),
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 20),
			WeekCount: 3,
		}, nil
	case domain.KindYearlyPlan:
		start := MondayOf(today).AddDate(0, 0, -7)
		return Recipe{
			Kind:      domain.KindYearlyPlan,
			Zone:      domain.ZoneB,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 364),
			WeekCount: 52,
		}, nil
	case domain.KindWorkoutsDone:
		return Recipe{
			Kind:      domain.KindWorkoutsDone,
			Zone:      domain.ZoneC,
			StartDate: today.AddDate(0, 0, -365),
			EndDate:   today,
		}, nil
	case domain.KindArchive:
		return Recipe{
			Kind:      domain.KindArchive,
			Zone:      domain.ZoneD,
			StartDate: today.AddDate(-2, 0, 0),
			EndDate:   today.AddDate(1, 0, 0),
		}, nil
	}
	return Recipe{}, fmt.Errorf("unrecognized plan kind %q", kind)
}

// CleanupRange returns the date range swept when a plan of this kind is
// rebuilt. The range is padded past the materialization range so stale
// rows from earlier, differently-anchored runs are collected too, but it
// stays scoped to the plan's own zone.
func CleanupRange(r Recipe) (from, to time.Time) {
	switch r.Kind {
	case domain.KindTemplateWeeks:
		// 4-week sweep anchored one week before the current Monday.
		return r.StartDate, r.StartDate.AddDate(0, 0, 27)
	case domain.KindYearlyPlan:
		return r.StartDate, r.StartDate.AddDate(0, 0, 399)
	}
	return r.StartDate, r.EndDate
}
