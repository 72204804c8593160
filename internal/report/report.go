// Package report renders task lists and analytics reports for the command
// line as tables, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"taskdash/internal/analytics"
	"taskdash/internal/task"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatYAML}
}

func ParseFormat(v string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(v))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown format %q (want table, json or yaml)", v)
}

const maxTitleLen = 40

// Renderer writes to w in a single format.
type Renderer struct {
	w      io.Writer
	format Format
}

func New(w io.Writer, format Format) *Renderer {
	if format == "" {
		format = FormatTable
	}
	return &Renderer{w: w, format: format}
}

type taskList struct {
	Tasks []task.Task `json:"tasks" yaml:"tasks"`
	Count int         `json:"count" yaml:"count"`
}

// Tasks renders a task list. Structured formats wrap it with a count.
func (r *Renderer) Tasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	switch r.format {
	case FormatJSON:
		return r.json(taskList{Tasks: tasks, Count: len(tasks)})
	case FormatYAML:
		return r.yaml(taskList{Tasks: tasks, Count: len(tasks)})
	}

	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(r.w, "No tasks found.")
		return nil
	}
	table := tablewriter.NewWriter(r.w)
	table.Header("ID", "Title", "Due", "Priority", "Category", "Status")
	for _, t := range tasks {
		_ = table.Append(taskRow(t))
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(r.w, "\nTotal: %d tasks\n", len(tasks))
	return nil
}

// Task renders a single task as field/value pairs.
func (r *Renderer) Task(t task.Task) error {
	switch r.format {
	case FormatJSON:
		return r.json(t)
	case FormatYAML:
		return r.yaml(t)
	}

	table := tablewriter.NewWriter(r.w)
	table.Header("Field", "Value")
	_ = table.Append([]string{"ID", t.ID})
	_ = table.Append([]string{"Title", t.Title})
	if t.Description != "" {
		_ = table.Append([]string{"Description", t.Description})
	}
	_ = table.Append([]string{"Due", t.DueDate})
	_ = table.Append([]string{"Priority", t.Priority.Label()})
	_ = table.Append([]string{"Category", task.CategoryName(t.CategoryID)})
	_ = table.Append([]string{"Status", t.Status()})
	return table.Render()
}

// Report renders the analytics for one range. The table form prints the
// summary, the series and both breakdowns.
func (r *Renderer) Report(rep analytics.Report) error {
	switch r.format {
	case FormatJSON:
		return r.json(rep)
	case FormatYAML:
		return r.yaml(rep)
	}

	_, _ = fmt.Fprintf(r.w, "%s\n\n", rep.Range.Label)
	if rep.Range.Empty() {
		_, _ = fmt.Fprintln(r.w, "No tasks found in the selected time period.")
		return nil
	}

	s := rep.Summary
	summary := tablewriter.NewWriter(r.w)
	summary.Header("Metric", "Value")
	_ = summary.Append([]string{"Total Tasks", strconv.Itoa(s.Total)})
	_ = summary.Append([]string{"Completed", strconv.Itoa(s.Completed)})
	_ = summary.Append([]string{"Completion Rate", fmt.Sprintf("%d%%", s.CompletionRate)})
	_ = summary.Append([]string{"Overdue", strconv.Itoa(s.Overdue)})
	_ = summary.Append([]string{"Upcoming (7 days)", strconv.Itoa(s.Upcoming)})
	_ = summary.Append([]string{"High Priority Pending", strconv.Itoa(s.HighPriority)})
	if err := summary.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(r.w)
	series := tablewriter.NewWriter(r.w)
	series.Header("Period", "Tasks", "Completed", "Rate", "Score")
	for _, b := range rep.Series {
		_ = series.Append([]string{
			b.Label,
			strconv.Itoa(b.Total),
			strconv.Itoa(b.Completed),
			fmt.Sprintf("%d%%", analytics.CompletionRate(b.Completed, b.Total)),
			strconv.FormatFloat(b.Score, 'f', 1, 64),
		})
	}
	if err := series.Render(); err != nil {
		return err
	}

	if len(rep.Categories) > 0 {
		_, _ = fmt.Fprintln(r.w)
		cats := tablewriter.NewWriter(r.w)
		cats.Header("Category", "Tasks", "Share")
		for _, c := range rep.Categories {
			_ = cats.Append([]string{
				c.Category.Name,
				strconv.Itoa(c.Count),
				fmt.Sprintf("%d%%", analytics.CompletionRate(c.Count, s.Total)),
			})
		}
		if err := cats.Render(); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(r.w)
	prio := tablewriter.NewWriter(r.w)
	prio.Header("Priority", "Completed", "Pending", "Total")
	for _, p := range rep.Priorities {
		_ = prio.Append([]string{
			p.Priority.Label(),
			strconv.Itoa(p.Completed),
			strconv.Itoa(p.Pending),
			strconv.Itoa(p.Total()),
		})
	}
	if err := prio.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(r.w, "\n%d tasks in this time period\n", len(rep.Tasks))
	return nil
}

func (r *Renderer) json(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json: %w", err)
	}
	_, err = fmt.Fprintln(r.w, string(data))
	return err
}

func (r *Renderer) yaml(v any) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	return enc.Close()
}

func taskRow(t task.Task) []string {
	return []string{
		t.ShortID(),
		truncate(t.Title, maxTitleLen),
		t.DueDate,
		t.Priority.Label(),
		task.CategoryName(t.CategoryID),
		t.Status(),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
