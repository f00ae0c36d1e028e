package schedule

import (
	"testing"
	"time"

	"alcyxob/training-calendar/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, 2024-06-12; its Monday is 2024-06-10.
var today = date(2024, time.June, 12)

func TestResolveTemplateWeeks(t *testing.T) {
	r, err := Resolve(domain.KindTemplateWeeks, domain.ZoneA, today)
	require.NoError(t, err)

	assert.Equal(t, domain.KindTemplateWeeks, r.Kind)
	assert.Equal(t, domain.ZoneA, r.Zone)
	assert.Equal(t, date(2024, time.June, 3), r.StartDate, "one week before the current Monday")
	assert.Equal(t, date(2024, time.June, 23), r.EndDate)
	assert.Equal(t, 3, r.WeekCount)
}

func TestResolveLegacyAliasNormalizes(t *testing.T) {
	r, err := Resolve(domain.KindCurrentWeeks, domain.ZoneB, today)
	require.NoError(t, err)
	assert.Equal(t, domain.KindTemplateWeeks, r.Kind)
	assert.Equal(t, domain.ZoneB, r.Zone, "zone hint honored for template kind")
}

func TestResolveYearlyPlan(t *testing.T) {
	// Zone hint must be ignored: yearly is pinned to zone B.
	r, err := Resolve(domain.KindYearlyPlan, domain.ZoneA, today)
	require.NoError(t, err)

	assert.Equal(t, domain.ZoneB, r.Zone)
	assert.Equal(t, date(2024, time.June, 3), r.StartDate)
	assert.Equal(t, date(2025, time.June, 2), r.EndDate, "start + 364 days")
	assert.Equal(t, 52, r.WeekCount)
}

func TestResolveWorkoutsDone(t *testing.T) {
	r, err := Resolve(domain.KindWorkoutsDone, "", today)
	require.NoError(t, err)

	assert.Equal(t, domain.ZoneC, r.Zone)
	assert.Equal(t, today.AddDate(0, 0, -365), r.StartDate)
	assert.Equal(t, today, r.EndDate)
	assert.Zero(t, r.WeekCount, "history is lazy, no eager scaffold")
}

func TestResolveArchive(t *testing.T) {
	r, err := Resolve(domain.KindArchive, "", today)
	require.NoError(t, err)

	assert.Equal(t, domain.ZoneD, r.Zone)
	assert.Equal(t, date(2022, time.June, 12), r.StartDate)
	assert.Equal(t, date(2025, time.June, 12), r.EndDate)
	assert.Zero(t, r.WeekCount)
}

func TestResolveUnknownKind(t *testing.T) {
	_, err := Resolve(domain.PlanKind("bogus"), "", today)
	assert.Error(t, err)
}

func TestZoneFor(t *testing.T) {
	tests := []struct {
		name string
		kind domain.PlanKind
		hint domain.Zone
		want domain.Zone
	}{
		{"template takes hint", domain.KindTemplateWeeks, domain.ZoneC, domain.ZoneC},
		{"template defaults to A", domain.KindTemplateWeeks, "", domain.ZoneA},
		{"template rejects zone D", domain.KindTemplateWeeks, domain.ZoneD, domain.ZoneA},
		{"yearly pinned to B", domain.KindYearlyPlan, domain.ZoneA, domain.ZoneB},
		{"history pinned to C", domain.KindWorkoutsDone, domain.ZoneA, domain.ZoneC},
		{"archive pinned to D", domain.KindArchive, domain.ZoneA, domain.ZoneD},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ZoneFor(tt.kind, tt.hint))
		})
	}
}

func TestCleanupRange(t *testing.T) {
	template, err := Resolve(domain.KindTemplateWeeks, domain.ZoneA, today)
	require.NoError(t, err)
	from, to := CleanupRange(template)
	assert.Equal(t, template.StartDate, from)
	assert.Equal(t, template.StartDate.AddDate(0, 0, 27), to, "4-week sweep")

	yearly, err := Resolve(domain.KindYearlyPlan, "", today)
	require.NoError(t, err)
	from, to = CleanupRange(yearly)
	assert.Equal(t, yearly.StartDate, from)
	assert.Equal(t, yearly.StartDate.AddDate(0, 0, 399), to)

	history, err := Resolve(domain.KindWorkoutsDone, "", today)
	require.NoError(t, err)
	from, to = CleanupRange(history)
	assert.Equal(t, history.StartDate, from)
	assert.Equal(t, history.EndDate, to)
}
