package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdash/internal/analytics"
	"taskdash/internal/task"
)

const (
	barWidth     = 30
	maxTableRows = 10
)

var (
	accent        = lipgloss.Color("#6366f1")
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(22)
	sidebarStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).PaddingRight(2).MarginRight(2)
	formStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
)

func priorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return overdueStyle
	case task.PriorityMedium:
		return pendingStyle
	default:
		return doneStyle
	}
}

func (m Model) renderDashboard() string {
	rep := m.report
	var b strings.Builder

	b.WriteString(m.renderRangeTabs())
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(rep.Range.Label))
	b.WriteString("\n")

	if rep.Range.Empty() || len(rep.Tasks) == 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("No tasks found in the selected time period."))
		return b.String()
	}

	b.WriteString(renderCards(rep.Summary))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Completion %s %d%%\n", m.bar.ViewAs(float64(rep.Summary.CompletionRate)/100), rep.Summary.CompletionRate))

	b.WriteString(sectionStyle.Render("Task Completion"))
	b.WriteString("\n")
	b.WriteString(renderCompletion(rep.Series))

	b.WriteString(sectionStyle.Render("Productivity Trend"))
	b.WriteString("\n")
	b.WriteString(renderScores(rep.Series))

	b.WriteString(sectionStyle.Render("Category Distribution"))
	b.WriteString("\n")
	b.WriteString(renderCategories(rep.Categories, rep.Summary.Total))

	b.WriteString(sectionStyle.Render("Priority Breakdown"))
	b.WriteString("\n")
	b.WriteString(renderPriorities(rep.Priorities))

	b.WriteString(sectionStyle.Render(fmt.Sprintf("%d tasks in this time period", len(rep.Tasks))))
	b.WriteString("\n")
	b.WriteString(m.renderRangeTasks(rep.Tasks))
	return b.String()
}

func (m Model) renderRangeTabs() string {
	k := m.cfg.Keys
	tabs := []struct {
		key  string
		kind analytics.Kind
	}{
		{k.RangeDay, analytics.KindDay},
		{k.RangeWeek, analytics.KindWeek},
		{k.RangeMonth, analytics.KindMonth},
		{k.RangeCustom, analytics.KindCustom},
	}
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("[%s] %s", t.key, strings.ToUpper(string(t.kind[:1]))+string(t.kind[1:]))
		if t.kind == m.rangeKind {
			label = selectedStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		parts[i] = label
	}
	return strings.Join(parts, "  ")
}

func renderCards(s analytics.Summary) string {
	cards := []string{
		card("Completion Rate", fmt.Sprintf("%d%%", s.CompletionRate), fmt.Sprintf("%d of %d tasks", s.Completed, s.Total)),
		card("Overdue Tasks", overdueStyle.Render(fmt.Sprint(s.Overdue)), overdueNote(s.Overdue)),
		card("Upcoming", fmt.Sprint(s.Upcoming), "due in the next 7 days"),
		card("High Priority", fmt.Sprint(s.HighPriority), "pending"),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func card(title, value, note string) string {
	return cardStyle.Render(mutedStyle.Render(title) + "\n" + lipgloss.NewStyle().Bold(true).Render(value) + "\n" + mutedStyle.Render(note))
}

func overdueNote(n int) string {
	if n == 0 {
		return "No overdue tasks!"
	}
	return "need attention"
}

func labelWidth(series []analytics.BucketStat) int {
	w := 0
	for _, s := range series {
		w = max(w, lipgloss.Width(s.Label))
	}
	return w
}

func renderCompletion(series []analytics.BucketStat) string {
	most := 0
	for _, s := range series {
		most = max(most, s.Total)
	}
	w := labelWidth(series)
	var b strings.Builder
	for _, s := range series {
		done := bar(float64(s.Completed), float64(most), barWidth)
		pending := bar(float64(s.Total), float64(most), barWidth) - done
		b.WriteString(fmt.Sprintf("%-*s %s%s %d/%d\n", w, s.Label,
			doneStyle.Render(strings.Repeat("█", done)),
			pendingStyle.Render(strings.Repeat("░", pending)),
			s.Completed, s.Total))
	}
	return b.String()
}

func renderScores(series []analytics.BucketStat) string {
	most := 0.0
	for _, s := range series {
		most = math.Max(most, s.Score)
	}
	w := labelWidth(series)
	var b strings.Builder
	for _, s := range series {
		b.WriteString(fmt.Sprintf("%-*s %s %.1f\n", w, s.Label,
			selectedStyle.Render(strings.Repeat("▇", bar(s.Score, most, barWidth))), s.Score))
	}
	return b.String()
}

func renderCategories(cats []analytics.CategoryCount, total int) string {
	if len(cats) == 0 {
		return mutedStyle.Render("No categorised tasks") + "\n"
	}
	w := 0
	for _, c := range cats {
		w = max(w, lipgloss.Width(c.Category.Name))
	}
	var b strings.Builder
	for _, c := range cats {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Category.Color))
		b.WriteString(fmt.Sprintf("%-*s %s %d (%d%%)\n", w, c.Category.Name,
			style.Render(strings.Repeat("█", bar(float64(c.Count), float64(total), barWidth))),
			c.Count, analytics.CompletionRate(c.Count, total)))
	}
	return b.String()
}

func renderPriorities(prios []analytics.PriorityCount) string {
	most := 0
	for _, p := range prios {
		most = max(most, p.Total())
	}
	var b strings.Builder
	for _, p := range prios {
		done := bar(float64(p.Completed), float64(most), barWidth)
		pending := bar(float64(p.Total()), float64(most), barWidth) - done
		b.WriteString(fmt.Sprintf("%-6s %s%s %d done, %d pending\n", p.Priority.Label(),
			doneStyle.Render(strings.Repeat("█", done)),
			pendingStyle.Render(strings.Repeat("░", pending)),
			p.Completed, p.Pending))
	}
	return b.String()
}

func (m Model) renderRangeTasks(tasks []task.Task) string {
	var b strings.Builder
	for i, t := range tasks {
		if i == maxTableRows {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("... and %d more", len(tasks)-maxTableRows)))
			b.WriteString("\n")
			break
		}
		status := pendingStyle.Render("pending")
		if t.Completed {
			status = doneStyle.Render("done")
		}
		b.WriteString(fmt.Sprintf("%-10s %-9s %s  %s  %s\n", t.DueDate, task.CategoryName(t.CategoryID),
			status, priorityStyle(t.Priority).Render(t.Priority.Label()), t.Title))
	}
	return b.String()
}

// bar scales v against most into at most width cells. Any positive value
// gets at least one cell.
func bar(v, most float64, width int) int {
	if v <= 0 || most <= 0 {
		return 0
	}
	n := int(math.Round(v / most * float64(width)))
	return min(max(n, 1), width)
}
