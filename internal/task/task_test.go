package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantErr bool
	}{
		{name: "defaults filled", draft: Draft{Title: "  Write report  "}},
		{name: "all fields", draft: Draft{Title: "Run", Description: "5k", DueDate: "2026-10-20", Priority: "HIGH", CategoryID: "health"}},
		{name: "rfc3339 due date", draft: Draft{Title: "Call", DueDate: "2026-10-20T14:00:00Z"}},
		{name: "empty title", draft: Draft{Title: "   "}, wantErr: true},
		{name: "bad priority", draft: Draft{Title: "x", Priority: "urgent"}, wantErr: true},
		{name: "bad due date", draft: Draft{Title: "x", DueDate: "next week"}, wantErr: true},
		{name: "unknown category", draft: Draft{Title: "x", CategoryID: "hobby"}, wantErr: true},
		{name: "all is not a category", draft: Draft{Title: "x", CategoryID: "all"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.draft, now)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTask))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.False(t, got.Completed)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	got, err := New(Draft{Title: "  Write report  "}, now)
	require.NoError(t, err)

	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, "2026-10-15", got.DueDate)
	assert.Equal(t, PriorityMedium, got.Priority)
	assert.Equal(t, "work", got.CategoryID)

	other, err := New(Draft{Title: "Another"}, now)
	require.NoError(t, err)
	assert.NotEqual(t, got.ID, other.ID)
}

func TestDue(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	d, ok := Task{DueDate: "2026-10-15"}.Due(loc)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, loc), d)

	d, ok = Task{DueDate: "2026-10-15T22:30:00Z"}.Due(loc)
	require.True(t, ok)
	assert.Equal(t, 16, d.Day())
	assert.Equal(t, 0, d.Hour())

	_, ok = Task{DueDate: "soon"}.Due(loc)
	assert.False(t, ok)
	_, ok = Task{}.Due(loc)
	assert.False(t, ok)
}

func TestPriorityWeight(t *testing.T) {
	assert.Equal(t, 5.0, PriorityHigh.Weight())
	assert.Equal(t, 3.0, PriorityMedium.Weight())
	assert.Equal(t, 1.0, PriorityLow.Weight())
	assert.Equal(t, 1.0, Priority("other").Weight())
}

func TestCategories(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 3)
	assert.Equal(t, "work", cats[0].ID)

	cats[0].Name = "changed"
	assert.Equal(t, "Work", Categories()[0].Name)

	assert.Equal(t, AllCategories, FilterCategories()[0].ID)
	assert.Equal(t, "Health", CategoryName("health"))
	assert.Equal(t, "All Tasks", CategoryName("missing"))
}
