// Package analytics turns a flat task list and a date-range selection into
// the dashboard figures: a bucketed time series, category and priority
// breakdowns and whole-range summary counts.
//
// Every function is pure. The reference instant is always passed in, so
// "today" never comes from the wall clock.
package analytics

import (
	"fmt"
	"strings"
	"time"

	"taskdash/internal/task"
)

type Kind string

const (
	KindDay    Kind = "day"
	KindWeek   Kind = "week"
	KindMonth  Kind = "month"
	KindCustom Kind = "custom"
)

func Kinds() []Kind {
	return []Kind{KindDay, KindWeek, KindMonth, KindCustom}
}

func ParseKind(v string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown range %q (want day, week, month or custom)", v)
}

// DateRange is an inclusive [Start, End] window. An empty range matches
// nothing and produces no buckets.
type DateRange struct {
	Kind  Kind      `json:"kind" yaml:"kind"`
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
	Label string    `json:"label" yaml:"label"`
	empty bool
}

func (r DateRange) Empty() bool {
	return r.empty || r.End.Before(r.Start) || (r.Start.IsZero() && r.End.IsZero())
}

func (r DateRange) Contains(t time.Time) bool {
	if r.Empty() {
		return false
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r DateRange) Location() *time.Location {
	return r.Start.Location()
}

// Days is the number of calendar days the range touches.
func (r DateRange) Days() int {
	if r.Empty() {
		return 0
	}
	return daysBetween(r.Start, r.End) + 1
}

// Resolve maps a range selection onto concrete instants in now's location.
// Custom dates that do not parse, or an end before the start, give an empty
// range. Unknown kinds resolve as a week.
func Resolve(kind Kind, customStart, customEnd string, now time.Time) DateRange {
	switch kind {
	case KindDay:
		return DateRange{
			Kind:  KindDay,
			Start: startOfDay(now),
			End:   endOfDay(now),
			Label: now.Format("January 2, 2006"),
		}
	case KindMonth:
		first := startOfMonth(now)
		return DateRange{
			Kind:  KindMonth,
			Start: first,
			End:   endOfDay(first.AddDate(0, 1, -1)),
			Label: now.Format("January 2006"),
		}
	case KindCustom:
		return resolveCustom(customStart, customEnd, now.Location())
	default:
		start := startOfWeek(now)
		end := endOfDay(start.AddDate(0, 0, 6))
		return DateRange{
			Kind:  KindWeek,
			Start: start,
			End:   end,
			Label: fmt.Sprintf("Week of %s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006")),
		}
	}
}

func resolveCustom(from, to string, loc *time.Location) DateRange {
	start, okStart := task.ParseDate(from, loc)
	end, okEnd := task.ParseDate(to, loc)
	if !okStart || !okEnd {
		return DateRange{Kind: KindCustom, Label: "Invalid date range", empty: true}
	}
	r := DateRange{
		Kind:  KindCustom,
		Start: startOfDay(start),
		End:   endOfDay(end),
		Label: fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006")),
	}
	if r.End.Before(r.Start) {
		r.empty = true
	}
	return r
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// startOfWeek returns Monday 00:00 of the week containing t.
func startOfWeek(t time.Time) time.Time {
	wd := t.Weekday()
	if wd == time.Sunday {
		wd = 7
	}
	offset := int(wd) - int(time.Monday)
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, ignoring clock time and DST.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ca := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	cb := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(cb.Sub(ca).Hours() / 24)
}
