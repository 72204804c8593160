package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"taskdash/internal/analytics"
	"taskdash/internal/task"
)

var now = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func fixture() []task.Task {
	return []task.Task{
		{ID: "0f8fad5b-d9cb-469f-a165-70867728950e", Title: "Ship", DueDate: "2026-10-14", Priority: task.PriorityHigh, CategoryID: "work", Completed: true},
		{ID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", Title: "Run", DueDate: "2026-10-16", Priority: task.PriorityLow, CategoryID: "health"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatTable},
		{in: "JSON", want: FormatJSON},
		{in: " yaml ", want: FormatYAML},
		{in: "csv", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestTasksTable(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, New(out, FormatTable).Tasks(fixture()))

	result := out.String()
	assert.Contains(t, result, "0f8fad5b")
	assert.NotContains(t, result, "0f8fad5b-d9cb")
	assert.Contains(t, result, "Ship")
	assert.Contains(t, result, "Health")
	assert.Contains(t, result, "pending")
	assert.Contains(t, result, "Total: 2 tasks")
}

func TestTasksTableEmpty(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, New(out, FormatTable).Tasks(nil))
	assert.Equal(t, "No tasks found.\n", out.String())
}

func TestTasksJSON(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, New(out, FormatJSON).Tasks(fixture()))

	var got struct {
		Tasks []task.Task `json:"tasks"`
		Count int         `json:"count"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, fixture(), got.Tasks)
	assert.Contains(t, out.String(), `"dueDate": "2026-10-14"`)
}

func TestTasksJSONEmptyIsArray(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, New(out, FormatJSON).Tasks(nil))
	assert.Contains(t, out.String(), `"tasks": []`)
}

func TestTaskTable(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, New(out, FormatTable).Task(fixture()[0]))

	result := out.String()
	assert.Contains(t, result, "Ship")
	assert.Contains(t, result, "High")
	assert.Contains(t, result, "completed")
}

func TestReportTable(t *testing.T) {
	rep := analytics.Analyze(fixture(), analytics.Resolve(analytics.KindWeek, "", "", now), now)

	out := &bytes.Buffer{}
	require.NoError(t, New(out, FormatTable).Report(rep))

	result := out.String()
	assert.Contains(t, result, "Week of Oct 12 - Oct 18, 2026")
	assert.Contains(t, result, "50%")
	assert.Contains(t, result, "Mon")
	assert.Contains(t, result, "Sun")
	assert.Contains(t, result, "5.0")
	assert.Contains(t, result, "Work")
	assert.Contains(t, result, "Medium")
	assert.Contains(t, result, "2 tasks in this time period")
}

func TestReportTableEmptyRange(t *testing.T) {
	rep := analytics.Analyze(fixture(), analytics.Resolve(analytics.KindCustom, "2026-10-20", "2026-10-01", now), now)

	out := &bytes.Buffer{}
	require.NoError(t, New(out, FormatTable).Report(rep))
	assert.Contains(t, out.String(), "No tasks found in the selected time period.")
}

func TestReportYAML(t *testing.T) {
	rep := analytics.Analyze(fixture(), analytics.Resolve(analytics.KindDay, "", "", now), now)

	out := &bytes.Buffer{}
	require.NoError(t, New(out, FormatYAML).Report(rep))

	var got struct {
		Granularity string `yaml:"granularity"`
		Series      []struct {
			Label string `yaml:"label"`
			Total int    `yaml:"total"`
		} `yaml:"series"`
		Summary analytics.Summary `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "part", got.Granularity)
	require.Len(t, got.Series, 4)
	assert.Equal(t, "Night (12am-6am)", got.Series[0].Label)
	assert.Zero(t, got.Summary.Total)
}

func TestReportJSON(t *testing.T) {
	rep := analytics.Analyze(fixture(), analytics.Resolve(analytics.KindMonth, "", "", now), now)

	out := &bytes.Buffer{}
	require.NoError(t, New(out, FormatJSON).Report(rep))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Contains(t, got, "series")
	assert.Contains(t, got, "priorities")
	summary, ok := got["summary"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, summary["total"])
	assert.EqualValues(t, 50, summary["completionRate"])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmno", 10))
}
