package analytics

import (
	"time"

	"taskdash/internal/task"
)

// BucketStat is the aggregate for one bucket.
type BucketStat struct {
	Bucket    `yaml:",inline"`
	Total     int     `json:"total" yaml:"total"`
	Completed int     `json:"completed" yaml:"completed"`
	Score     float64 `json:"score" yaml:"score"`
}

type CategoryCount struct {
	Category task.Category `json:"category" yaml:"category"`
	Count    int           `json:"count" yaml:"count"`
}

type PriorityCount struct {
	Priority  task.Priority `json:"priority" yaml:"priority"`
	Completed int           `json:"completed" yaml:"completed"`
	Pending   int           `json:"pending" yaml:"pending"`
}

func (p PriorityCount) Total() int {
	return p.Completed + p.Pending
}

// Report is everything the dashboard renders for one range.
type Report struct {
	Range       DateRange       `json:"range" yaml:"range"`
	Granularity Granularity     `json:"granularity" yaml:"granularity"`
	Series      []BucketStat    `json:"series" yaml:"series"`
	Categories  []CategoryCount `json:"categories" yaml:"categories"`
	Priorities  []PriorityCount `json:"priorities" yaml:"priorities"`
	Summary     Summary         `json:"summary" yaml:"summary"`
	Tasks       []task.Task     `json:"tasks" yaml:"tasks"`
}

// Analyze resolves the buckets for r and aggregates tasks over them.
func Analyze(tasks []task.Task, r DateRange, now time.Time) Report {
	return Aggregate(tasks, Buckets(r), r, now)
}

// Aggregate filters tasks to r once and feeds the same subset to the series,
// the breakdowns and the summary, so every figure describes the same tasks.
func Aggregate(tasks []task.Task, buckets []Bucket, r DateRange, now time.Time) Report {
	inRange := InRange(tasks, r)
	return Report{
		Range:       r,
		Granularity: GranularityOf(r),
		Series:      Series(inRange, buckets, r.Location()),
		Categories:  CategoryDistribution(inRange),
		Priorities:  PriorityBreakdown(inRange),
		Summary:     Summarize(inRange, now),
		Tasks:       inRange,
	}
}

// InRange keeps tasks whose due date parses and falls inside r. The input
// slice is not modified.
func InRange(tasks []task.Task, r DateRange) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	if r.Empty() {
		return out
	}
	loc := r.Location()
	for _, t := range tasks {
		due, ok := t.Due(loc)
		if !ok || !r.Contains(due) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Series counts each task into the first bucket containing its due date.
// Tasks outside every bucket are dropped.
func Series(tasks []task.Task, buckets []Bucket, loc *time.Location) []BucketStat {
	members := make([][]task.Task, len(buckets))
	for _, t := range tasks {
		due, ok := t.Due(loc)
		if !ok {
			continue
		}
		if i := bucketIndex(buckets, due); i >= 0 {
			members[i] = append(members[i], t)
		}
	}
	out := make([]BucketStat, len(buckets))
	for i, b := range buckets {
		stat := BucketStat{Bucket: b, Total: len(members[i]), Score: ProductivityScore(members[i])}
		for _, t := range members[i] {
			if t.Completed {
				stat.Completed++
			}
		}
		out[i] = stat
	}
	return out
}

func bucketIndex(buckets []Bucket, due time.Time) int {
	for i, b := range buckets {
		if b.Contains(due) {
			return i
		}
	}
	return -1
}

// ProductivityScore adds the priority weight of each completed task and
// takes off a fifth of it for each pending one. It never goes below zero.
func ProductivityScore(tasks []task.Task) float64 {
	// Tenths keep the sum exact.
	var tenths int64
	for _, t := range tasks {
		w := int64(t.Priority.Weight())
		if t.Completed {
			tenths += w * 10
		} else {
			tenths -= w * 2
		}
	}
	if tenths < 0 {
		return 0
	}
	return float64(tenths) / 10
}

// CategoryDistribution counts tasks per predefined category, in display
// order, leaving out categories with no tasks.
func CategoryDistribution(tasks []task.Task) []CategoryCount {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.CategoryID]++
	}
	out := []CategoryCount{}
	for _, c := range task.Categories() {
		if n := counts[c.ID]; n > 0 {
			out = append(out, CategoryCount{Category: c, Count: n})
		}
	}
	return out
}

// PriorityBreakdown always returns high, medium and low in that order.
func PriorityBreakdown(tasks []task.Task) []PriorityCount {
	out := make([]PriorityCount, 0, 3)
	for _, p := range task.Priorities() {
		pc := PriorityCount{Priority: p}
		for _, t := range tasks {
			if t.Priority != p {
				continue
			}
			if t.Completed {
				pc.Completed++
			} else {
				pc.Pending++
			}
		}
		out = append(out, pc)
	}
	return out
}
