package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"wednesday", date(2024, time.June, 12), date(2024, time.June, 10)},
		{"monday is itself", date(2024, time.June, 10), date(2024, time.June, 10)},
		{"sunday belongs to preceding monday", date(2024, time.June, 16), date(2024, time.June, 10)},
		{"saturday", date(2024, time.June, 15), date(2024, time.June, 10)},
		{"across month boundary", date(2024, time.May, 1), date(2024, time.April, 29)},
		{"across year boundary", date(2025, time.January, 1), date(2024, time.December, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MondayOf(tt.in))
		})
	}
}

func TestMondayOfProperties(t *testing.T) {
	// Walk a year of dates: the result is always a Monday at most 6 days
	// back from the input.
	d := date(2024, time.January, 1)
	for i := 0; i < 366; i++ {
		monday := MondayOf(d)
		require.Equal(t, time.Monday, monday.Weekday(), "MondayOf(%s)", d)
		require.False(t, d.Before(monday), "MondayOf(%s) lies after its input", d)
		require.True(t, d.Before(monday.AddDate(0, 0, 7)), "MondayOf(%s) more than a week back", d)
		d = d.AddDate(0, 0, 1)
	}
}

func TestNextMonday(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday unchanged", date(2024, time.June, 10), date(2024, time.June, 10)},
		{"tuesday jumps forward", date(2024, time.June, 11), date(2024, time.June, 17)},
		{"sunday is one day away", date(2024, time.June, 16), date(2024, time.June, 17)},
		{"saturday", date(2024, time.June, 15), date(2024, time.June, 17)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextMonday(tt.in))
		})
	}
}

func TestMidnightNormalizesToUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	in := time.Date(2024, time.June, 12, 1, 30, 0, 0, loc) // 2024-06-11 22:30 UTC
	assert.Equal(t, date(2024, time.June, 11), Midnight(in))
}

func TestISOWeekday(t *testing.T) {
	assert.Equal(t, 1, ISOWeekday(date(2024, time.June, 10))) // Monday
	assert.Equal(t, 3, ISOWeekday(date(2024, time.June, 12))) // Wednesday
	assert.Equal(t, 7, ISOWeekday(date(2024, time.June, 16))) // Sunday
}
