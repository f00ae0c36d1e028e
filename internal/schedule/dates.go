// Package schedule contains the pure scheduling logic of the calendar
// engine: Monday alignment, plan-kind recipes and the current-window
// selector. Nothing in this package touches the store or the wall clock;
// "today" is always an explicit parameter so callers (and tests) control it.
package schedule

import "time"

// MondayOf returns the Monday of the calendar week containing d, at
// midnight UTC. It always holds that MondayOf(d) <= d < MondayOf(d)+7d.
func MondayOf(d time.Time) time.Time {
	d = Midnight(d)
	switch dow := d.Weekday(); dow {
	case time.Sunday:
		return d.AddDate(0, 0, -6)
	default:
		return d.AddDate(0, 0, -(int(dow) - 1))
	}
}

// NextMonday returns d unchanged if it already falls on a Monday,
// otherwise the soonest following Monday.
func NextMonday(d time.Time) time.Time {
	d = Midnight(d)
	switch dow := d.Weekday(); dow {
	case time.Monday:
		return d
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d.AddDate(0, 0, 8-int(dow))
	}
}

// Midnight truncates a timestamp to its calendar date in UTC. Day rows are
// keyed by date, so every date entering the store goes through here.
func Midnight(d time.Time) time.Time {
	y, m, day := d.UTC().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// ISOWeekday maps time.Weekday to the 1=Monday .. 7=Sunday numbering used
// on Day rows.
func ISOWeekday(d time.Time) int {
	if wd := int(d.Weekday()); wd != 0 {
		return wd
	}
	return 7
}
