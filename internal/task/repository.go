package task

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Store persists the whole list under one key.
type Store interface {
	LoadTasks() ([]Task, bool, error)
	SaveTasks([]Task) error
}

// Repository keeps the current list in memory and writes it back to the
// store after every mutation.
type Repository struct {
	mu    sync.Mutex
	store Store
	tasks List
	log   logrus.FieldLogger
}

// OpenRepository loads the list. When the store has never been written and
// seed is set, the sample tasks are saved first.
func OpenRepository(store Store, seed bool, log logrus.FieldLogger) (*Repository, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &Repository{store: store, log: log.WithField("component", "repository")}
	tasks, found, err := store.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	r.tasks = List(tasks).Clone()
	if !found && seed {
		r.tasks = SampleTasks()
		if err := store.SaveTasks(r.tasks); err != nil {
			return nil, fmt.Errorf("seed tasks: %w", err)
		}
		r.log.WithField("count", len(r.tasks)).Info("seeded sample tasks")
	}
	return r, nil
}

// Snapshot returns a copy callers may read while others mutate.
func (r *Repository) Snapshot() List {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tasks.Clone()
}

func (r *Repository) Add(d Draft, now time.Time) (Task, error) {
	t, err := New(d, now)
	if err != nil {
		return Task{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.commit(r.tasks.Add(t)); err != nil {
		return Task{}, err
	}
	r.log.WithFields(logrus.Fields{"id": t.ID, "due": t.DueDate}).Debug("task added")
	return t, nil
}

func (r *Repository) Toggle(id string) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, t, err := r.tasks.Toggle(id)
	if err != nil {
		return Task{}, err
	}
	if err := r.commit(next); err != nil {
		return Task{}, err
	}
	r.log.WithFields(logrus.Fields{"id": t.ID, "completed": t.Completed}).Debug("task toggled")
	return t, nil
}

func (r *Repository) Delete(id string) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, t, err := r.tasks.Delete(id)
	if err != nil {
		return Task{}, err
	}
	if err := r.commit(next); err != nil {
		return Task{}, err
	}
	r.log.WithField("id", t.ID).Debug("task deleted")
	return t, nil
}

// Replace swaps the whole list, keeping only records that validate. It
// returns how many were skipped.
func (r *Repository) Replace(tasks []Task) (int, error) {
	kept := make(List, 0, len(tasks))
	skipped := 0
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			r.log.WithError(err).WithField("id", t.ID).Warn("skipping invalid task")
			skipped++
			continue
		}
		kept = append(kept, t)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.commit(kept); err != nil {
		return 0, err
	}
	return skipped, nil
}

func (r *Repository) commit(next List) error {
	if err := r.store.SaveTasks(next); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	r.tasks = next
	return nil
}
