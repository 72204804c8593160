package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"taskdash/internal/analytics"
	"taskdash/internal/config"
	"taskdash/internal/task"
)

type view int

const (
	viewList view = iota
	viewAnalytics
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeRange
)

type Model struct {
	repo       *task.Repository
	cfg        config.Config
	log        logrus.FieldLogger
	now        func() time.Time
	tasks      task.List
	visible    task.List
	cursor     int
	view       view
	mode       mode
	input      textinput.Model
	bar        progress.Model
	status     string
	category   int
	filter     string
	confirmDel bool
	pendingDel *task.Task
	form       *fieldSet
	rangeKind  analytics.Kind
	rangeFrom  string
	rangeTo    string
	report     analytics.Report
	width      int
}

// NewModel builds the program state from the repository. now is read each
// time the dashboard is recomputed; nil means time.Now.
func NewModel(repo *task.Repository, cfg config.Config, log logrus.FieldLogger, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	kind, err := analytics.ParseKind(cfg.DefaultRange)
	if err != nil {
		kind = analytics.KindWeek
	}
	filter := strings.ToLower(cfg.DefaultFilter)
	if !validFilter(filter) {
		filter = task.StatusAll
	}

	m := Model{
		repo:      repo,
		cfg:       cfg,
		log:       log.WithField("component", "ui"),
		now:       now,
		input:     ti,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		mode:      modeList,
		filter:    filter,
		rangeKind: kind,
		status: fmt.Sprintf("Press '%s' to add, '%s' to toggle, '%s' for analytics.",
			cfg.Keys.Add, keyName(cfg.Keys.Toggle), cfg.Keys.SwitchView),
	}
	m.reload()
	return m
}

func Run(repo *task.Repository, cfg config.Config, log logrus.FieldLogger) error {
	program := tea.NewProgram(NewModel(repo, cfg, log, nil), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.view == viewAnalytics {
			return m.updateAnalyticsMode(msg.String())
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-10, 10)
		m.bar.Width = min(max(msg.Width-30, 10), 60)
	}
	return m, nil
}

// reload refreshes the list, the visible slice and the dashboard after a
// mutation or a filter change.
func (m *Model) reload() {
	m.tasks = m.repo.Snapshot()
	m.visible = m.tasks.Filter(m.categoryID(), m.filter)
	m.cursor = clampCursor(m.cursor, len(m.visible))
	m.report = analytics.Analyze(m.tasks, m.currentRange(), m.now())
}

func (m Model) currentRange() analytics.DateRange {
	return analytics.Resolve(m.rangeKind, m.rangeFrom, m.rangeTo, m.now())
}

func (m Model) categoryID() string {
	return task.FilterCategories()[m.category].ID
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.visible) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.visible))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.visible))
		}
	case m.cfg.Keys.Add:
		return m.openAddForm()
	case m.cfg.Keys.Toggle:
		if len(m.visible) == 0 {
			return m, nil
		}
		t, err := m.repo.Toggle(m.visible[m.cursor].ID)
		if err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.reload()
		m.cursor = clampCursor(m.cursor+1, len(m.visible))
		m.status = fmt.Sprintf("Marked \"%s\" %s", t.Title, t.Status())
	case m.cfg.Keys.Delete:
		if len(m.visible) == 0 {
			return m, nil
		}
		t := m.visible[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Title)
	case m.cfg.Keys.Detail:
		if len(m.visible) == 0 {
			m.status = "No tasks"
			return m, nil
		}
		m.status = detailLine(m.visible[m.cursor], m.now())
	case m.cfg.Keys.CycleCategory:
		m.category = wrapIndex(m.category+1, len(task.FilterCategories()))
		m.cursor = 0
		m.reload()
		m.status = "Showing " + task.CategoryName(m.categoryID())
	case m.cfg.Keys.CycleFilter:
		filters := task.StatusFilters()
		m.filter = filters[wrapIndex(indexOf(filters, m.filter)+1, len(filters))]
		m.cursor = 0
		m.reload()
		m.status = "Filter: " + m.filter
	case m.cfg.Keys.SwitchView:
		m.view = viewAnalytics
		m.reload()
		m.status = m.report.Range.Label
	}
	return m, nil
}

func (m Model) updateAnalyticsMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.SwitchView:
		m.view = viewList
		m.status = fmt.Sprintf("%d tasks", len(m.visible))
	case m.cfg.Keys.RangeDay:
		return m.selectRange(analytics.KindDay)
	case m.cfg.Keys.RangeWeek:
		return m.selectRange(analytics.KindWeek)
	case m.cfg.Keys.RangeMonth:
		return m.selectRange(analytics.KindMonth)
	case m.cfg.Keys.RangeCustom:
		m.form = newFieldSet("Custom range", rangeFields(), []string{m.rangeFrom, m.rangeTo})
		m.mode = modeRange
		m.loadField()
		cmd := m.input.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) selectRange(kind analytics.Kind) (tea.Model, tea.Cmd) {
	m.rangeKind = kind
	m.reload()
	m.status = m.report.Range.Label
	return m, nil
}

func (m Model) openAddForm() (tea.Model, tea.Cmd) {
	category := m.categoryID()
	if category == task.AllCategories {
		category = task.Categories()[0].ID
	}
	values := make([]string, len(addFields()))
	values[fieldDue] = m.now().Format(task.DateLayout)
	values[fieldPriority] = string(task.PriorityMedium)
	values[fieldCategory] = category

	m.form = newFieldSet("New task", addFields(), values)
	m.mode = modeAdd
	m.loadField()
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) loadField() {
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
	m.status = m.form.prompt()
}

func (m Model) closeForm(status string) Model {
	m.form = nil
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.status = status
	return m
}

func (m Model) updateForm(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		return m.closeForm("Cancelled"), nil
	case m.cfg.Keys.NextField, "down":
		m.form.setCurrentValue(m.input.Value())
		m.form.move(1)
		m.loadField()
		return m, nil
	case "shift+tab", "up":
		m.form.setCurrentValue(m.input.Value())
		m.form.move(-1)
		m.loadField()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if !m.form.last() {
			m.form.index++
			m.loadField()
			return m, nil
		}
		if m.mode == modeRange {
			return m.saveRange()
		}
		return m.saveTask()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveTask() (tea.Model, tea.Cmd) {
	f := m.form
	t, err := m.repo.Add(task.Draft{
		Title:       f.value(fieldTitle),
		Description: f.value(fieldDescription),
		DueDate:     f.value(fieldDue),
		Priority:    f.value(fieldPriority),
		CategoryID:  f.value(fieldCategory),
	}, m.now())
	if err != nil {
		m.status = fmt.Sprintf("add failed: %v", err)
		return m, nil
	}
	m = m.closeForm(fmt.Sprintf("Added \"%s\"", t.Title))
	m.reload()
	for i, v := range m.visible {
		if v.ID == t.ID {
			m.cursor = i
			break
		}
	}
	return m, nil
}

func (m Model) saveRange() (tea.Model, tea.Cmd) {
	from, to := m.form.value(fieldFrom), m.form.value(fieldTo)
	m = m.closeForm("")
	m.rangeKind = analytics.KindCustom
	m.rangeFrom, m.rangeTo = from, to
	m.reload()
	m.status = m.report.Range.Label
	if m.report.Range.Empty() {
		m.log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("empty custom range")
		m.status = "Invalid date range: no tasks can match"
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if _, err := m.repo.Delete(m.pendingDel.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.reload()
			m.status = "Deleted task"
		}
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch {
	case m.form != nil:
		b.WriteString(formStyle.Render(m.form.render()))
		b.WriteString("\n")
		b.WriteString("Field: " + m.form.currentLabel())
		b.WriteString("\n")
		b.WriteString(m.input.View())
	case m.view == viewAnalytics:
		b.WriteString(m.renderDashboard())
	default:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderTaskList()))
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.renderHelp()))

	return b.String()
}

func (m Model) renderHeader() string {
	tabs := []string{"Tasks", "Analytics"}
	for i, name := range tabs {
		if view(i) == m.view {
			tabs[i] = selectedStyle.Render("[" + name + "]")
		} else {
			tabs[i] = mutedStyle.Render(" " + name + " ")
		}
	}
	return titleStyle.Render(config.AppName) + "  " + strings.Join(tabs, " ")
}

func (m Model) renderHelp() string {
	k := m.cfg.Keys
	if m.view == viewAnalytics {
		return fmt.Sprintf("%s day • %s week • %s month • %s custom • %s tasks • %s quit",
			k.RangeDay, k.RangeWeek, k.RangeMonth, k.RangeCustom, k.SwitchView, k.Quit)
	}
	return fmt.Sprintf("%s/%s move • %s add • %s detail • %s toggle • %s delete • %s category • %s filter • %s analytics • %s quit",
		k.Up, k.Down, k.Add, k.Detail, keyName(k.Toggle), k.Delete, k.CycleCategory, k.CycleFilter, k.SwitchView, k.Quit)
}

func (m Model) renderSidebar() string {
	counts := m.tasks.CountByCategory()
	var b strings.Builder
	for i, c := range task.FilterCategories() {
		line := fmt.Sprintf("%s (%d)", c.Name, counts[c.ID])
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		if i == m.category {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(swatch + line + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("filter: "+m.filter))
	return sidebarStyle.Render(b.String())
}

func (m Model) renderTaskList() string {
	if len(m.visible) == 0 {
		if len(m.tasks) == 0 {
			return fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.cfg.Keys.Add)
		}
		return "No tasks match this view."
	}
	today := m.now()
	var b strings.Builder
	for i, t := range m.visible {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		title := t.Title
		if t.Completed {
			title = doneStyle.Render(title)
		}
		due := t.DueDate
		if isOverdue(t, today) {
			due = overdueStyle.Render(due)
		}
		body := fmt.Sprintf("%s %s %s  %s  %s", cursor, checkbox, title, mutedStyle.Render(due), priorityStyle(t.Priority).Render(t.Priority.Label()))

		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

func detailLine(t task.Task, now time.Time) string {
	info := fmt.Sprintf("Task %s • %s • %s", t.ShortID(), t.Title, t.Status())
	if t.Description != "" {
		info += " • " + t.Description
	}
	info += " • due:" + t.DueDate
	if isOverdue(t, now) {
		info += " (overdue)"
	}
	info += " • priority:" + t.Priority.Label()
	info += " • category:" + task.CategoryName(t.CategoryID)
	return info
}

func isOverdue(t task.Task, now time.Time) bool {
	return !t.Completed && analytics.Summarize([]task.Task{t}, now).Overdue > 0
}

func validFilter(f string) bool {
	return indexOf(task.StatusFilters(), f) >= 0
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
