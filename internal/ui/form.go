package ui

import (
	"fmt"
	"strings"
)

// fieldSet is a small multi-field editor driven through the single text
// input: the input holds the current field, the rest live here.
type fieldSet struct {
	title  string
	labels []string
	values []string
	index  int
}

func newFieldSet(title string, labels, values []string) *fieldSet {
	vals := make([]string, len(labels))
	copy(vals, values)
	return &fieldSet{title: title, labels: labels, values: vals}
}

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldPriority
	fieldCategory
)

func addFields() []string {
	return []string{"title", "description", "due date (YYYY-MM-DD)", "priority (low/medium/high)", "category (work/personal/health)"}
}

const (
	fieldFrom = iota
	fieldTo
)

func rangeFields() []string {
	return []string{"start date (YYYY-MM-DD)", "end date (YYYY-MM-DD)"}
}

func (f fieldSet) currentLabel() string {
	return f.labels[f.index]
}

func (f fieldSet) currentValue() string {
	return f.values[f.index]
}

func (f *fieldSet) setCurrentValue(v string) {
	f.values[f.index] = v
}

func (f fieldSet) value(i int) string {
	return strings.TrimSpace(f.values[i])
}

func (f fieldSet) last() bool {
	return f.index >= len(f.labels)-1
}

func (f *fieldSet) move(delta int) {
	f.index = wrapIndex(f.index+delta, len(f.labels))
}

func (f fieldSet) prompt() string {
	return fmt.Sprintf("Editing %s (field %d of %d). Enter to advance, Esc to cancel, tab to move.",
		f.currentLabel(), f.index+1, len(f.labels))
}

func (f fieldSet) render() string {
	width := 0
	for _, l := range f.labels {
		width = max(width, len(l))
	}
	var b strings.Builder
	b.WriteString(f.title)
	b.WriteString("\n\n")
	for i, name := range f.labels {
		prefix := " "
		if i == f.index {
			prefix = ">"
		}
		val := f.values[i]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-*s : %s\n", prefix, width, name, val))
	}
	return b.String()
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
