package task

import (
	"fmt"
	"strings"
)

// Status filters for the list view.
const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

func StatusFilters() []string {
	return []string{StatusAll, StatusActive, StatusCompleted}
}

// List is an ordered task list. Every mutating method returns a new slice
// and leaves the receiver untouched.
type List []Task

func (l List) Clone() List {
	if l == nil {
		return List{}
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

func (l List) Add(t Task) List {
	out := make(List, 0, len(l)+1)
	out = append(out, l...)
	return append(out, t)
}

func (l List) Toggle(id string) (List, Task, error) {
	idx, err := l.index(id)
	if err != nil {
		return l, Task{}, err
	}
	out := l.Clone()
	out[idx].Completed = !out[idx].Completed
	return out, out[idx], nil
}

func (l List) Delete(id string) (List, Task, error) {
	idx, err := l.index(id)
	if err != nil {
		return l, Task{}, err
	}
	removed := l[idx]
	out := make(List, 0, len(l)-1)
	out = append(out, l[:idx]...)
	out = append(out, l[idx+1:]...)
	return out, removed, nil
}

// Find matches an exact id first, then a unique prefix.
func (l List) Find(id string) (Task, error) {
	idx, err := l.index(id)
	if err != nil {
		return Task{}, err
	}
	return l[idx], nil
}

func (l List) index(id string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	for i, t := range l {
		if t.ID == id {
			return i, nil
		}
	}
	match := -1
	for i, t := range l {
		if strings.HasPrefix(t.ID, id) {
			if match >= 0 {
				return -1, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return match, nil
}

// Filter keeps tasks matching the category (or "all") and status filter.
func (l List) Filter(categoryID, status string) List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if categoryID != "" && categoryID != AllCategories && t.CategoryID != categoryID {
			continue
		}
		switch status {
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		case StatusActive:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// CountByCategory counts tasks per category id for the sidebar. The "all"
// key holds the list length.
func (l List) CountByCategory() map[string]int {
	counts := map[string]int{AllCategories: len(l)}
	for _, t := range l {
		counts[t.CategoryID]++
	}
	return counts
}

// SampleTasks seeds an empty store on first launch.
func SampleTasks() List {
	return List{
		{
			ID:          "1",
			Title:       "Complete project proposal",
			Description: "Finish the draft and send for review",
			DueDate:     "2023-12-15",
			Priority:    PriorityHigh,
			CategoryID:  "work",
		},
		{
			ID:          "2",
			Title:       "Buy groceries",
			Description: "Milk, eggs, bread, and vegetables",
			Completed:   true,
			DueDate:     "2023-12-10",
			Priority:    PriorityMedium,
			CategoryID:  "personal",
		},
		{
			ID:          "3",
			Title:       "Schedule dentist appointment",
			Description: "Call Dr. Smith for a checkup",
			DueDate:     "2023-12-20",
			Priority:    PriorityLow,
			CategoryID:  "health",
		},
	}
}
