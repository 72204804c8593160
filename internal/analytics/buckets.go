package analytics

import (
	"time"
)

type Granularity string

const (
	GranularityPart  Granularity = "part"
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

const (
	maxDailySpan  = 30
	maxWeeklySpan = 90
)

// Bucket is one x-axis slot. Start and End are inclusive.
type Bucket struct {
	Label string    `json:"label" yaml:"label"`
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

type dayPart struct {
	name string
	from int
}

// Parts of the day in chronological order, six hours each.
var dayParts = []dayPart{
	{name: "Night (12am-6am)", from: 0},
	{name: "Morning (6am-12pm)", from: 6},
	{name: "Afternoon (12pm-6pm)", from: 12},
	{name: "Evening (6pm-12am)", from: 18},
}

// GranularityOf picks the bucket size for a range: parts of the day for a
// single day, days for a week or month, and for custom ranges days up to
// 30 days, 7-day windows up to 90, months beyond.
func GranularityOf(r DateRange) Granularity {
	if r.Empty() {
		return ""
	}
	switch r.Kind {
	case KindDay:
		return GranularityPart
	case KindCustom:
		switch days := r.Days(); {
		case days <= maxDailySpan:
			return GranularityDay
		case days <= maxWeeklySpan:
			return GranularityWeek
		default:
			return GranularityMonth
		}
	default:
		return GranularityDay
	}
}

// Buckets partitions the range into chronological, non-overlapping buckets
// whose union is the whole range.
func Buckets(r DateRange) []Bucket {
	switch GranularityOf(r) {
	case GranularityPart:
		return partBuckets(r)
	case GranularityDay:
		return dayBuckets(r)
	case GranularityWeek:
		return weekBuckets(r)
	case GranularityMonth:
		return monthBuckets(r)
	default:
		return nil
	}
}

func partBuckets(r DateRange) []Bucket {
	y, m, d := r.Start.Date()
	loc := r.Location()
	out := make([]Bucket, 0, len(dayParts))
	for _, p := range dayParts {
		start := time.Date(y, m, d, p.from, 0, 0, 0, loc)
		end := time.Date(y, m, d, p.from+6, 0, 0, 0, loc).Add(-time.Nanosecond)
		out = append(out, Bucket{Label: p.name, Start: start, End: end})
	}
	return out
}

func dayBuckets(r DateRange) []Bucket {
	layout := "Jan 2"
	switch r.Kind {
	case KindWeek:
		layout = "Mon"
	case KindMonth:
		layout = "2"
	}
	out := make([]Bucket, 0, r.Days())
	for day := startOfDay(r.Start); !day.After(r.End); day = day.AddDate(0, 0, 1) {
		out = append(out, clip(Bucket{Label: day.Format(layout), Start: day, End: endOfDay(day)}, r))
	}
	return out
}

// weekBuckets uses 7-day windows anchored at the range start, not calendar weeks.
func weekBuckets(r DateRange) []Bucket {
	var out []Bucket
	for start := startOfDay(r.Start); !start.After(r.End); start = start.AddDate(0, 0, 7) {
		b := Bucket{Label: start.Format("Jan 2"), Start: start, End: endOfDay(start.AddDate(0, 0, 6))}
		out = append(out, clip(b, r))
	}
	return out
}

func monthBuckets(r DateRange) []Bucket {
	var out []Bucket
	for first := startOfMonth(r.Start); !first.After(r.End); first = first.AddDate(0, 1, 0) {
		b := Bucket{Label: first.Format("Jan 2006"), Start: first, End: endOfDay(first.AddDate(0, 1, -1))}
		out = append(out, clip(b, r))
	}
	return out
}

func clip(b Bucket, r DateRange) Bucket {
	if b.Start.Before(r.Start) {
		b.Start = r.Start
	}
	if b.End.After(r.End) {
		b.End = r.End
	}
	return b
}
