package ui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdash/internal/analytics"
	"taskdash/internal/config"
	"taskdash/internal/task"
)

var now = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

type memStore struct {
	tasks []task.Task
	saves int
}

func (m *memStore) LoadTasks() ([]task.Task, bool, error) {
	return m.tasks, true, nil
}

func (m *memStore) SaveTasks(tasks []task.Task) error {
	m.saves++
	m.tasks = append([]task.Task(nil), tasks...)
	return nil
}

func newTestModel(t *testing.T) (Model, *task.Repository) {
	t.Helper()
	store := &memStore{tasks: []task.Task{
		{ID: "1", Title: "Write report", DueDate: "2026-10-14", Priority: task.PriorityHigh, CategoryID: "work"},
		{ID: "2", Title: "Call mom", DueDate: "2026-10-15", Priority: task.PriorityMedium, CategoryID: "personal", Completed: true},
		{ID: "3", Title: "Gym", DueDate: "2026-10-16", Priority: task.PriorityLow, CategoryID: "health"},
	}}
	log := logrus.New()
	log.SetOutput(io.Discard)

	repo, err := task.OpenRepository(store, false, log)
	require.NoError(t, err)
	return NewModel(repo, config.Default(), log, func() time.Time { return now }), repo
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func ids(l task.List) []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = t.ID
	}
	return out
}

func TestCycleCategory(t *testing.T) {
	m, _ := newTestModel(t)
	require.Len(t, m.visible, 3)

	m = press(m, "c")
	assert.Equal(t, "work", m.categoryID())
	assert.Equal(t, []string{"1"}, ids(m.visible))

	m = press(m, "c", "c", "c")
	assert.Equal(t, task.AllCategories, m.categoryID())
	assert.Len(t, m.visible, 3)
}

func TestCycleFilter(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "f")
	assert.Equal(t, task.StatusActive, m.filter)
	assert.Equal(t, []string{"1", "3"}, ids(m.visible))

	m = press(m, "f")
	assert.Equal(t, []string{"2"}, ids(m.visible))
}

func TestToggle(t *testing.T) {
	m, repo := newTestModel(t)

	m = press(m, " ")
	got, err := repo.Snapshot().Find("1")
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, m.status, "completed")
}

func TestDeleteAsksFirst(t *testing.T) {
	m, repo := newTestModel(t)

	m = press(m, "d")
	assert.True(t, m.confirmDel)
	m = press(m, "n")
	assert.False(t, m.confirmDel)
	assert.Len(t, repo.Snapshot(), 3)

	m = press(m, "j", "d", "y")
	assert.Equal(t, []string{"1", "3"}, ids(repo.Snapshot()))
	assert.Equal(t, []string{"1", "3"}, ids(m.visible))
	assert.Equal(t, "Deleted task", m.status)
}

func TestAddFormUsesDefaults(t *testing.T) {
	m, repo := newTestModel(t)

	m = press(m, "a")
	require.NotNil(t, m.form)
	m = press(m, "Buy milk", "enter", "enter", "enter", "enter", "enter")

	assert.Nil(t, m.form)
	require.Len(t, repo.Snapshot(), 4)
	added := repo.Snapshot()[3]
	assert.Equal(t, "Buy milk", added.Title)
	assert.Equal(t, "2026-10-15", added.DueDate)
	assert.Equal(t, task.PriorityMedium, added.Priority)
	assert.Equal(t, "work", added.CategoryID)
	assert.Equal(t, 3, m.cursor)
}

func TestAddFormTakesCategoryFromSidebar(t *testing.T) {
	m, repo := newTestModel(t)

	m = press(m, "c", "c", "c", "a", "Stretch", "tab", "tab", "tab", "tab")
	require.NotNil(t, m.form)
	assert.Equal(t, "health", m.input.Value())

	m = press(m, "enter")
	assert.Nil(t, m.form)
	added := repo.Snapshot()[3]
	assert.Equal(t, "Stretch", added.Title)
	assert.Equal(t, "health", added.CategoryID)
	assert.Equal(t, []string{"3", added.ID}, ids(m.visible))
}

func TestAddFormRejectsEmptyTitle(t *testing.T) {
	m, repo := newTestModel(t)

	m = press(m, "a", "enter", "enter", "enter", "enter", "enter")
	assert.NotNil(t, m.form)
	assert.Contains(t, m.status, "add failed")
	assert.Len(t, repo.Snapshot(), 3)

	m = press(m, "esc")
	assert.Nil(t, m.form)
	assert.Equal(t, "Cancelled", m.status)
}

func TestAnalyticsRanges(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "v")
	assert.Equal(t, viewAnalytics, m.view)
	assert.Equal(t, analytics.KindWeek, m.report.Range.Kind)
	assert.Equal(t, 3, m.report.Summary.Total)

	m = press(m, "1")
	assert.Equal(t, analytics.KindDay, m.report.Range.Kind)
	assert.Len(t, m.report.Tasks, 1)
	assert.Contains(t, m.View(), "October 15, 2026")

	m = press(m, "v")
	assert.Equal(t, viewList, m.view)
}

func TestCustomRange(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "v", "4")
	require.NotNil(t, m.form)
	m = press(m, "2026-10-14", "enter", "2026-10-15", "enter")

	assert.Nil(t, m.form)
	assert.Equal(t, analytics.KindCustom, m.report.Range.Kind)
	assert.Equal(t, "Oct 14, 2026 - Oct 15, 2026", m.report.Range.Label)
	assert.Len(t, m.report.Tasks, 2)
	assert.Equal(t, 1, m.report.Summary.Completed)
}

func TestCustomRangeReversed(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "v", "4", "2026-10-15", "enter", "2026-10-01", "enter")
	assert.True(t, m.report.Range.Empty())
	assert.Contains(t, m.status, "Invalid date range")
	assert.Contains(t, m.View(), "No tasks found in the selected time period.")
}

func TestViewShowsListAndSidebar(t *testing.T) {
	m, _ := newTestModel(t)

	out := m.View()
	assert.Contains(t, out, "All Tasks (3)")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "[x]")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDetailLine(t *testing.T) {
	line := detailLine(task.Task{ID: "0f8fad5b-d9cb", Title: "Ship", DueDate: "2026-10-14", Priority: task.PriorityHigh, CategoryID: "work"}, now)
	assert.Equal(t, "Task 0f8fad5b • Ship • pending • due:2026-10-14 (overdue) • priority:High • category:Work", line)
}

func TestBar(t *testing.T) {
	assert.Equal(t, 0, bar(0, 10, 30))
	assert.Equal(t, 1, bar(0.1, 10, 30))
	assert.Equal(t, 15, bar(5, 10, 30))
	assert.Equal(t, 30, bar(10, 10, 30))
}
