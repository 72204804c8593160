package task

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	tasks  []Task
	found  bool
	saves  int
	failOn int
}

func (m *memStore) LoadTasks() ([]Task, bool, error) {
	return m.tasks, m.found, nil
}

func (m *memStore) SaveTasks(tasks []Task) error {
	m.saves++
	if m.failOn > 0 && m.saves == m.failOn {
		return errors.New("disk full")
	}
	m.tasks = append([]Task(nil), tasks...)
	m.found = true
	return nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestOpenRepositorySeeds(t *testing.T) {
	store := &memStore{}
	repo, err := OpenRepository(store, true, quietLogger())
	require.NoError(t, err)

	assert.Len(t, repo.Snapshot(), 3)
	assert.Equal(t, 1, store.saves)
}

func TestOpenRepositoryDoesNotSeedExistingEmptyList(t *testing.T) {
	store := &memStore{found: true}
	repo, err := OpenRepository(store, true, quietLogger())
	require.NoError(t, err)

	assert.Empty(t, repo.Snapshot())
	assert.Equal(t, 0, store.saves)
}

func TestRepositorySavesEveryMutation(t *testing.T) {
	store := &memStore{found: true}
	repo, err := OpenRepository(store, false, quietLogger())
	require.NoError(t, err)

	added, err := repo.Add(Draft{Title: "Stretch", CategoryID: "health"}, now)
	require.NoError(t, err)
	require.Len(t, store.tasks, 1)

	toggled, err := repo.Toggle(added.ShortID())
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.True(t, store.tasks[0].Completed)

	_, err = repo.Delete(added.ID)
	require.NoError(t, err)
	assert.Empty(t, store.tasks)
	assert.Equal(t, 3, store.saves)

	_, err = repo.Toggle(added.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRepositoryKeepsStateWhenSaveFails(t *testing.T) {
	store := &memStore{found: true, failOn: 1}
	repo, err := OpenRepository(store, false, quietLogger())
	require.NoError(t, err)

	_, err = repo.Add(Draft{Title: "Lost"}, now)
	require.Error(t, err)
	assert.Empty(t, repo.Snapshot())
}

func TestReplaceSkipsInvalid(t *testing.T) {
	store := &memStore{found: true}
	repo, err := OpenRepository(store, false, quietLogger())
	require.NoError(t, err)

	skipped, err := repo.Replace([]Task{
		{ID: "1", Title: "ok", DueDate: "2026-10-01", Priority: PriorityLow, CategoryID: "work"},
		{ID: "2", Title: "", DueDate: "2026-10-01", Priority: PriorityLow},
		{ID: "3", Title: "bad date", DueDate: "tomorrow", Priority: PriorityLow},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	assert.Len(t, repo.Snapshot(), 1)
}
