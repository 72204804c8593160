package analytics

import (
	"math"
	"time"

	"taskdash/internal/task"
)

const upcomingWindowDays = 7

type Summary struct {
	Total          int `json:"total" yaml:"total"`
	Completed      int `json:"completed" yaml:"completed"`
	CompletionRate int `json:"completionRate" yaml:"completionRate"`
	Overdue        int `json:"overdue" yaml:"overdue"`
	Upcoming       int `json:"upcoming" yaml:"upcoming"`
	HighPriority   int `json:"highPriority" yaml:"highPriority"`
}

// CompletionRate is the rounded percentage of completed tasks, 0 for none.
func CompletionRate(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Summarize counts the whole list at day granularity relative to now:
// overdue is pending and due before today, upcoming is pending and due
// between today and a week from today. The two never overlap. A task whose
// due date does not parse still counts toward the totals.
func Summarize(tasks []task.Task, now time.Time) Summary {
	today := startOfDay(now)
	horizon := today.AddDate(0, 0, upcomingWindowDays)
	loc := now.Location()

	var s Summary
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
			continue
		}
		if t.Priority == task.PriorityHigh {
			s.HighPriority++
		}
		due, ok := t.Due(loc)
		if !ok {
			continue
		}
		day := startOfDay(due)
		switch {
		case day.Before(today):
			s.Overdue++
		case !day.After(horizon):
			s.Upcoming++
		}
	}
	s.CompletionRate = CompletionRate(s.Completed, s.Total)
	return s
}
