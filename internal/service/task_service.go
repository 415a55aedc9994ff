package service

import (
	"context"
	"fmt"
	"time"

	"deadline-reminder/internal/model"
	"deadline-reminder/internal/store"
)

// Snapshot is the persistence collaborator: a durable record of the
// full task set, replaced wholesale after each mutation.
type Snapshot interface {
	SaveAll(ctx context.Context, tasks []*model.Task) error
	LoadAll(ctx context.Context) ([]*model.Task, error)
}

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title              string
	Description        string
	Deadline           time.Time
	DeadlineTime       *model.TimeOfDay
	Priority           model.Priority
	Category           string
	Recurring          bool
	RecurrenceUnit     model.RecurrenceUnit
	RecurrenceInterval int
}

// TaskService wraps task mutations: every change goes to the in-memory
// store and is then persisted synchronously.
type TaskService struct {
	store *store.Store
	repo  Snapshot
}

func NewTaskService(st *store.Store, repo Snapshot) *TaskService {
	return &TaskService{store: st, repo: repo}
}

// Load replaces the store's contents with the persisted snapshot.
func (s *TaskService) Load(ctx context.Context) error {
	tasks, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	s.store.Replace(tasks)
	return nil
}

// Create validates the input, adds the task and persists. The title is
// the only required field.
func (s *TaskService) Create(ctx context.Context, now time.Time, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	var task *model.Task
	if input.Recurring {
		unit := input.RecurrenceUnit
		if unit == "" {
			unit = model.RecurDaily
		}
		task = model.NewRecurring(now, input.Title, input.Description, input.Deadline,
			input.DeadlineTime, input.Priority, input.Category, unit, input.RecurrenceInterval)
	} else {
		task = model.New(now, input.Title, input.Description, input.Deadline,
			input.DeadlineTime, input.Priority, input.Category)
	}

	s.store.Add(task)
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns the task with the given id, or nil when absent.
func (s *TaskService) Get(id string) *model.Task {
	return s.store.Find(id)
}

// Update applies the given options to the task and persists. Reports
// false when the id is unknown. The options run under the store's
// write lock so a concurrent snapshot never sees a half-applied task.
func (s *TaskService) Update(ctx context.Context, id string, options ...TaskOption) (bool, error) {
	ok := s.store.Update(id, func(task *model.Task) {
		for _, opt := range options {
			opt(task)
		}
	})
	if !ok {
		return false, nil
	}
	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Complete marks the task done; a recurring task spawns its next
// occurrence in the same step. Reports false when the id is unknown.
func (s *TaskService) Complete(ctx context.Context, now time.Time, id string) (bool, error) {
	if !s.store.Complete(id, now) {
		return false, nil
	}
	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Delete removes the task. Reports false when the id is unknown.
func (s *TaskService) Delete(ctx context.Context, id string) (bool, error) {
	if !s.store.Remove(id) {
		return false, nil
	}
	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Cleanup drops completed tasks older than the given age in days and
// persists when anything was removed.
func (s *TaskService) Cleanup(ctx context.Context, now time.Time, olderThanDays int) (int, error) {
	removed := s.store.CleanupCompleted(now, olderThanDays)
	if removed == 0 {
		return 0, nil
	}
	if err := s.persist(ctx); err != nil {
		return removed, err
	}
	return removed, nil
}

// Read passthroughs, so the presentation layer only ever talks to
// services.

func (s *TaskService) All() []*model.Task {
	return s.store.All()
}

func (s *TaskService) ByDate(date time.Time) []*model.Task {
	return s.store.ByDate(date)
}

func (s *TaskService) Pending() []*model.Task {
	return s.store.PendingTasks()
}

func (s *TaskService) Search(query string) []*model.Task {
	return s.store.Search(query)
}

func (s *TaskService) Statistics(now time.Time) store.Statistics {
	return s.store.Statistics(now)
}

// Save persists the current store contents without mutating them.
func (s *TaskService) Save(ctx context.Context) error {
	return s.persist(ctx)
}

// persist hands the repository deep copies of the store contents, so
// the background snapshot job never reads tasks the interactive
// session is mutating.
func (s *TaskService) persist(ctx context.Context) error {
	if err := s.repo.SaveAll(ctx, s.store.Snapshot()); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}
