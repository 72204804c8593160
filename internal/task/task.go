// Package task holds the task model, the fixed category set and the
// in-memory list operations behind every mutation.
package task

import (
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the levels from most to least important.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Weight is the productivity weight of the level. Unknown levels weigh like low.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityHigh:
		return 5
	case PriorityMedium:
		return 3
	default:
		return 1
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return string(p)
	}
}

func ParsePriority(v string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(v))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium, "":
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", invalidf("priority %q must be low, medium or high", v)
}

// Task mirrors the record kept in the persisted blob. DueDate stays the raw
// string the user typed; Due parses it on demand.
type Task struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate     string   `json:"dueDate" yaml:"dueDate" validate:"required,duedate"`
	Priority    Priority `json:"priority" yaml:"priority" validate:"oneof=low medium high"`
	CategoryID  string   `json:"categoryId,omitempty" yaml:"categoryId,omitempty" validate:"omitempty,category"`
	Completed   bool     `json:"completed" yaml:"completed"`
}

// Due parses the due date in loc. Date-only values resolve to midnight.
func (t Task) Due(loc *time.Location) (time.Time, bool) {
	return ParseDate(t.DueDate, loc)
}

func (t Task) Status() string {
	if t.Completed {
		return "completed"
	}
	return "pending"
}

// ShortID is the prefix shown in lists and accepted by Find.
func (t Task) ShortID() string {
	if len(t.ID) > 8 {
		return t.ID[:8]
	}
	return t.ID
}

// ParseDate accepts YYYY-MM-DD and RFC3339.
func ParseDate(v string, loc *time.Location) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if d, err := time.ParseInLocation(DateLayout, v, loc); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, v); err == nil {
		return d.In(loc), true
	}
	return time.Time{}, false
}

type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

const AllCategories = "all"

var categories = []Category{
	{ID: "work", Name: "Work", Color: "#f43f5e"},
	{ID: "personal", Name: "Personal", Color: "#14b8a6"},
	{ID: "health", Name: "Health", Color: "#8b5cf6"},
}

var allCategory = Category{ID: AllCategories, Name: "All Tasks", Color: "#6366f1"}

// Categories returns the predefined categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// FilterCategories is Categories prefixed with the "all" pseudo category.
func FilterCategories() []Category {
	return append([]Category{allCategory}, categories...)
}

func LookupCategory(id string) (Category, bool) {
	if id == AllCategories {
		return allCategory, true
	}
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName falls back to the "all" name for unset or unknown ids.
func CategoryName(id string) string {
	if c, ok := LookupCategory(id); ok {
		return c.Name
	}
	return allCategory.Name
}
