// Package store holds the in-memory task collection and its query
// semantics. It is not persistence; a repository snapshots its
// contents to durable storage.
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"deadline-reminder/internal/model"
)

// Store is the in-process task collection. A mutex guards the slice
// and every field mutation, because a background snapshot job reads
// the store while the interactive session mutates it. Other goroutines
// must read through Snapshot, which returns copies; the pointers the
// query methods return are owned by the interactive caller.
type Store struct {
	mu    sync.RWMutex
	tasks []*model.Task
}

func New() *Store {
	return &Store{}
}

// Add appends a task to the collection.
func (s *Store) Add(task *model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

// Replace swaps the whole collection, used when loading a snapshot.
func (s *Store) Replace(tasks []*model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
}

// Find returns the task with the given id, or nil.
func (s *Store) Find(id string) *model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locate(id)
}

// Remove deletes the task with the given id and reports whether it
// existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, task := range s.tasks {
		if task.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of tasks held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// All returns every task ordered by deadline date, then time-of-day.
// A task without a time-of-day sorts as the earliest of its day.
func (s *Store) All() []*model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*model.Task, len(s.tasks))
	copy(all, s.tasks)
	sortByDeadline(all)
	return all
}

// ByDate returns tasks due on the given calendar day, unordered.
func (s *Store) ByDate(date time.Time) []*model.Task {
	date = model.DateOf(date)
	return s.filter(func(t *model.Task) bool {
		return t.DeadlineDate.Equal(date)
	})
}

// ByCategory returns tasks with a matching category, compared
// case-insensitively.
func (s *Store) ByCategory(category string) []*model.Task {
	category = strings.ToLower(category)
	return s.filter(func(t *model.Task) bool {
		return strings.ToLower(t.Category) == category
	})
}

// ByPriority returns tasks with the given priority, unordered.
func (s *Store) ByPriority(priority model.Priority) []*model.Task {
	return s.filter(func(t *model.Task) bool {
		return t.Priority == priority
	})
}

// Upcoming returns pending tasks due between today and today+days
// inclusive, ordered like All.
func (s *Store) Upcoming(now time.Time, days int) []*model.Task {
	today := model.DateOf(now)
	horizon := today.AddDate(0, 0, days)
	upcoming := s.filter(func(t *model.Task) bool {
		return !t.Completed &&
			!t.DeadlineDate.Before(today) &&
			!t.DeadlineDate.After(horizon)
	})
	sortByDeadline(upcoming)
	return upcoming
}

// Overdue returns every task whose deadline has passed.
func (s *Store) Overdue(now time.Time) []*model.Task {
	return s.filter(func(t *model.Task) bool {
		return t.IsOverdue(now)
	})
}

// CompletedTasks returns tasks already done.
func (s *Store) CompletedTasks() []*model.Task {
	return s.filter(func(t *model.Task) bool {
		return t.Completed
	})
}

// PendingTasks returns tasks not yet done.
func (s *Store) PendingTasks() []*model.Task {
	return s.filter(func(t *model.Task) bool {
		return !t.Completed
	})
}

// Search returns tasks whose title or description contains the query,
// case-insensitively.
func (s *Store) Search(query string) []*model.Task {
	query = strings.ToLower(query)
	return s.filter(func(t *model.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Description), query)
	})
}

// Complete marks the task done and, for a recurring task, appends the
// next occurrence as a fresh pending task. The completed instance
// stays in the collection as history. Reports whether the id existed.
func (s *Store) Complete(id string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := s.locate(id)
	if task == nil {
		return false
	}
	task.MarkCompleted(now)
	if next := task.NextOccurrence(now); next != nil {
		s.tasks = append(s.tasks, next)
	}
	return true
}

// Update applies a mutation to the task with the given id under the
// write lock and reports whether the id existed.
func (s *Store) Update(id string, apply func(*model.Task)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := s.locate(id)
	if task == nil {
		return false
	}
	apply(task)
	return true
}

// CleanupCompleted removes completed tasks whose completion timestamp
// is older than the given number of days. Pending tasks are never
// touched, whatever their deadline. Returns the number removed.
func (s *Store) CleanupCompleted(now time.Time, olderThanDays int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.AddDate(0, 0, -olderThanDays)
	kept := s.tasks[:0]
	removed := 0
	for _, task := range s.tasks {
		if task.Completed && task.CompletedAt != nil && task.CompletedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, task)
	}
	s.tasks = kept
	return removed
}

// Statistics summarizes the collection.
type Statistics struct {
	Total          int
	Completed      int
	Pending        int
	Overdue        int
	CompletionRate float64
	ByCategory     map[string]int
	ByPriority     map[model.Priority]int
}

// Statistics counts tasks by state, category and priority. The
// priority map always carries all three levels, zero counts included,
// and the completion rate of an empty store is zero.
func (s *Store) Statistics(now time.Time) Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := Statistics{
		Total:      len(s.tasks),
		ByCategory: make(map[string]int),
		ByPriority: map[model.Priority]int{
			model.PriorityHigh:   0,
			model.PriorityMedium: 0,
			model.PriorityLow:    0,
		},
	}
	for _, task := range s.tasks {
		if task.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if task.IsOverdue(now) {
			stats.Overdue++
		}
		stats.ByCategory[task.Category]++
		stats.ByPriority[task.Priority]++
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats
}

// Snapshot returns deep copies of every task, ordered like All. The
// copies are safe to read on another goroutine while this store keeps
// mutating.
func (s *Store) Snapshot() []*model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]*model.Task, len(s.tasks))
	for i, task := range s.tasks {
		snapshot[i] = task.Clone()
	}
	sortByDeadline(snapshot)
	return snapshot
}

// locate is Find without locking, for callers already holding a lock.
func (s *Store) locate(id string) *model.Task {
	for _, task := range s.tasks {
		if task.ID == id {
			return task
		}
	}
	return nil
}

func (s *Store) filter(keep func(*model.Task) bool) []*model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []*model.Task
	for _, task := range s.tasks {
		if keep(task) {
			matched = append(matched, task)
		}
	}
	return matched
}

func sortByDeadline(tasks []*model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].DeadlineDate.Equal(tasks[j].DeadlineDate) {
			return tasks[i].DeadlineDate.Before(tasks[j].DeadlineDate)
		}
		return minutesOf(tasks[i]) < minutesOf(tasks[j])
	})
}

func minutesOf(t *model.Task) int {
	if t.DeadlineTime == nil {
		return 0
	}
	return t.DeadlineTime.MinutesOfDay()
}
