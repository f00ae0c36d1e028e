package schedule

import (
	"sort"
	"time"

	"alcyxob/training-calendar/internal/domain"
)

// WindowWeek is a read-only projection of a plan week renumbered for the
// 3-week viewing frame. WeekNumber is the display number (1..3);
// OriginalWeekNumber is the week's position in the full plan. The
// projection is never written back to the store.
type WindowWeek struct {
	Week               domain.Week  `json:"week"`
	WeekNumber         int          `json:"weekNumber"`
	OriginalWeekNumber int          `json:"originalWeekNumber"`
	Days               []domain.Day `json:"days"`
}

// SelectCurrentWindow picks the (up to) 3-week viewing window around today
// out of a larger plan. The anchor is the week whose day span contains
// today; if no span does, the week whose Monday day is nearest to today.
// Near a plan boundary, where fewer than 3 weeks surround the anchor, the
// first 3 weeks of the plan are returned instead. Days carried into the
// projection are copies with WeekNumber rewritten to the display number.
func SelectCurrentWindow(weeks []domain.Week, today time.Time) []WindowWeek {
	if len(weeks) == 0 {
		return []WindowWeek{}
	}
	today = Midnight(today)

	sorted := make([]domain.Week, len(weeks))
	copy(sorted, weeks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].WeekNumber < sorted[j].WeekNumber
	})
	for i := range sorted {
		sortDaysByDate(sorted[i].Days)
	}

	anchor, ok := anchorWeek(sorted, today)

	var window []domain.Week
	if ok {
		target := map[int]bool{anchor - 1: true, anchor: true, anchor + 1: true}
		for _, w := range sorted {
			if target[w.WeekNumber] {
				window = append(window, w)
			}
		}
	}
	if len(window) < 3 {
		// Anchor missing or sitting on a plan boundary: fall back to the
		// first 3 weeks so the frame is always fully populated when the
		// plan has enough weeks at all.
		if len(sorted) > 3 {
			window = sorted[:3]
		} else {
			window = sorted
		}
	}

	out := make([]WindowWeek, len(window))
	for i, w := range window {
		days := make([]domain.Day, len(w.Days))
		copy(days, w.Days)
		for j := range days {
			days[j].WeekNumber = i + 1
		}
		out[i] = WindowWeek{
			Week:               w,
			WeekNumber:         i + 1,
			OriginalWeekNumber: w.WeekNumber,
			Days:               days,
		}
	}
	return out
}

// anchorWeek finds the week number anchoring the viewing window: first the
// week whose day span contains today, then the nearest-Monday fallback.
func anchorWeek(weeks []domain.Week, today time.Time) (int, bool) {
	for _, w := range weeks {
		if len(w.Days) == 0 {
			continue
		}
		first := Midnight(w.Days[0].Date)
		last := Midnight(w.Days[len(w.Days)-1].Date)
		if !today.Before(first) && !today.After(last) {
			return w.WeekNumber, true
		}
	}

	// Clock skew or data gaps: anchor on the week whose Monday day is
	// closest to today in absolute days.
	best, bestDist, found := 0, 0, false
	for _, w := range weeks {
		for _, d := range w.Days {
			if d.Date.Weekday() != time.Monday {
				continue
			}
			dist := int(today.Sub(Midnight(d.Date)).Hours() / 24)
			if dist < 0 {
				dist = -dist
			}
			if !found || dist < bestDist {
				best, bestDist, found = w.WeekNumber, dist, true
			}
			break
		}
	}
	return best, found
}

func sortDaysByDate(days []domain.Day) {
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
}
