package store_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deadline-reminder/internal/model"
	"deadline-reminder/internal/store"
)

var now = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func dueIn(days int) time.Time {
	return model.DateOf(now).AddDate(0, 0, days)
}

func newTask(title string, deadline time.Time, priority model.Priority, category string) *model.Task {
	return model.New(now, title, "", deadline, nil, priority, category)
}

func TestAddFindRemove(t *testing.T) {
	s := store.New()
	task := newTask("a", dueIn(1), 2, "")
	s.Add(task)

	assert.Equal(t, 1, s.Len())
	assert.Same(t, task, s.Find(task.ID))
	assert.Nil(t, s.Find("missing"))

	assert.False(t, s.Remove("missing"))
	assert.True(t, s.Remove(task.ID))
	assert.Equal(t, 0, s.Len())
}

func TestAllOrdering(t *testing.T) {
	s := store.New()
	evening := newTask("evening", dueIn(1), 2, "")
	evening.DeadlineTime = &model.TimeOfDay{Hour: 18, Minute: 0}
	anytime := newTask("anytime", dueIn(1), 2, "")
	morning := newTask("morning", dueIn(1), 2, "")
	morning.DeadlineTime = &model.TimeOfDay{Hour: 8, Minute: 30}
	later := newTask("later", dueIn(2), 2, "")
	s.Add(later)
	s.Add(evening)
	s.Add(anytime)
	s.Add(morning)

	all := s.All()
	require.Len(t, all, 4)
	// Same-day tasks order by time-of-day; no time sorts first.
	assert.Equal(t, "anytime", all[0].Title)
	assert.Equal(t, "morning", all[1].Title)
	assert.Equal(t, "evening", all[2].Title)
	assert.Equal(t, "later", all[3].Title)
}

func TestFilters(t *testing.T) {
	s := store.New()
	s.Add(newTask("work1", dueIn(0), model.PriorityHigh, "Work"))
	s.Add(newTask("home1", dueIn(1), model.PriorityLow, "home"))
	s.Add(newTask("work2", dueIn(1), model.PriorityHigh, "work"))

	assert.Len(t, s.ByDate(now), 1)
	assert.Len(t, s.ByCategory("WORK"), 2, "category match is case-insensitive")
	assert.Len(t, s.ByPriority(model.PriorityHigh), 2)
	assert.Empty(t, s.ByPriority(model.PriorityMedium))
}

func TestUpcomingWindow(t *testing.T) {
	s := store.New()
	today := newTask("today", dueIn(0), 2, "")
	inWindow := newTask("in window", dueIn(3), 2, "")
	edge := newTask("edge", dueIn(7), 2, "")
	beyond := newTask("beyond", dueIn(8), 2, "")
	past := newTask("past", dueIn(-1), 2, "")
	done := newTask("done", dueIn(2), 2, "")
	done.MarkCompleted(now)
	for _, task := range []*model.Task{beyond, edge, inWindow, today, past, done} {
		s.Add(task)
	}

	upcoming := s.Upcoming(now, 7)
	require.Len(t, upcoming, 3)
	assert.Equal(t, "today", upcoming[0].Title, "window includes today and is sorted")
	assert.Equal(t, "in window", upcoming[1].Title)
	assert.Equal(t, "edge", upcoming[2].Title, "window is inclusive at today+N")
}

func TestOverdueAndPending(t *testing.T) {
	s := store.New()
	late := newTask("late", dueIn(-2), 2, "")
	current := newTask("current", dueIn(1), 2, "")
	done := newTask("done", dueIn(-5), 2, "")
	done.MarkCompleted(now)
	s.Add(late)
	s.Add(current)
	s.Add(done)

	overdue := s.Overdue(now)
	require.Len(t, overdue, 1)
	assert.Equal(t, "late", overdue[0].Title)

	assert.Len(t, s.PendingTasks(), 2)
	assert.Len(t, s.CompletedTasks(), 1)
}

func TestSearch(t *testing.T) {
	s := store.New()
	s.Add(model.New(now, "Buy groceries", "milk and eggs", dueIn(1), nil, 2, ""))
	s.Add(model.New(now, "Call dentist", "", dueIn(2), nil, 2, ""))

	assert.Len(t, s.Search("GROCER"), 1)
	assert.Len(t, s.Search("eggs"), 1, "description is searched too")
	assert.Empty(t, s.Search("plumber"))
}

func TestCompleteRegular(t *testing.T) {
	s := store.New()
	task := newTask("a", dueIn(1), 2, "")
	s.Add(task)

	assert.False(t, s.Complete("missing", now))
	assert.True(t, s.Complete(task.ID, now))
	assert.True(t, task.Completed)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, 1, s.Len(), "no new task spawned for a regular task")
}

func TestCompleteRecurringSpawnsNextOccurrence(t *testing.T) {
	s := store.New()
	task := model.NewRecurring(now, "report", "", model.Date(2024, time.January, 1), nil,
		model.PriorityMedium, "work", model.RecurDaily, 3)
	s.Add(task)

	require.True(t, s.Complete(task.ID, now))
	require.Equal(t, 2, s.Len())

	assert.True(t, task.Completed)
	assert.Equal(t, model.Date(2024, time.January, 1), task.DeadlineDate, "history keeps its deadline")

	var next *model.Task
	for _, candidate := range s.PendingTasks() {
		next = candidate
	}
	require.NotNil(t, next)
	assert.Equal(t, model.Date(2024, time.January, 4), next.DeadlineDate)
	assert.Equal(t, "report", next.Title)
	assert.NotEqual(t, task.ID, next.ID)
}

func TestCleanupCompleted(t *testing.T) {
	s := store.New()
	old := newTask("old", dueIn(-60), 2, "")
	old.MarkCompleted(now.AddDate(0, 0, -40))
	recent := newTask("recent", dueIn(-10), 2, "")
	recent.MarkCompleted(now.AddDate(0, 0, -5))
	stale := newTask("stale pending", dueIn(-90), 2, "")
	s.Add(old)
	s.Add(recent)
	s.Add(stale)

	removed := s.CleanupCompleted(now, 30)
	assert.Equal(t, 1, removed)
	assert.Nil(t, s.Find(old.ID))
	assert.NotNil(t, s.Find(recent.ID))
	assert.NotNil(t, s.Find(stale.ID), "pending tasks survive regardless of deadline age")
}

func TestStatistics(t *testing.T) {
	s := store.New()

	empty := s.Statistics(now)
	assert.Zero(t, empty.CompletionRate, "empty store must not divide by zero")
	assert.Len(t, empty.ByPriority, 3, "all priority levels present with zero counts")
	assert.NotNil(t, empty.ByCategory)

	s.Add(newTask("a", dueIn(-1), model.PriorityHigh, "work"))
	done := newTask("b", dueIn(1), model.PriorityMedium, "work")
	done.MarkCompleted(now)
	s.Add(done)
	s.Add(newTask("c", dueIn(2), model.PriorityHigh, "home"))
	s.Add(newTask("d", dueIn(3), model.PriorityHigh, "home"))

	stats := s.Statistics(now)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 3, stats.Pending)
	assert.Equal(t, 1, stats.Overdue)
	assert.InDelta(t, 25.0, stats.CompletionRate, 0.001)
	assert.Equal(t, 2, stats.ByCategory["work"])
	assert.Equal(t, 2, stats.ByCategory["home"])
	assert.Equal(t, 3, stats.ByPriority[model.PriorityHigh])
	assert.Equal(t, 1, stats.ByPriority[model.PriorityMedium])
	assert.Equal(t, 0, stats.ByPriority[model.PriorityLow])
}

func TestReplace(t *testing.T) {
	s := store.New()
	original := newTask("a", dueIn(1), 2, "")
	s.Add(original)

	replacement := []*model.Task{
		newTask("x", dueIn(1), 2, ""),
		newTask("y", dueIn(2), 2, ""),
	}
	s.Replace(replacement)
	assert.Equal(t, 2, s.Len())
	assert.Nil(t, s.Find(original.ID))
}

func TestUpdate(t *testing.T) {
	s := store.New()
	task := newTask("draft", dueIn(1), 2, "")
	s.Add(task)

	assert.True(t, s.Update(task.ID, func(t *model.Task) {
		t.Title = "final"
	}))
	assert.Equal(t, "final", task.Title)
	assert.False(t, s.Update("missing", func(*model.Task) {}))
}

func TestSnapshotReturnsIndependentCopies(t *testing.T) {
	s := store.New()
	deadlineTime := model.TimeOfDay{Hour: 9, Minute: 30}
	task := model.NewRecurring(now, "standup", "", dueIn(1), &deadlineTime, 2, "work", model.RecurWeekly, 2)
	s.Add(task)

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 1)
	copied := snapshot[0]
	assert.NotSame(t, task, copied)
	assert.Equal(t, task.ID, copied.ID)
	assert.NotSame(t, task.DeadlineTime, copied.DeadlineTime)
	assert.NotSame(t, task.Recurrence, copied.Recurrence)

	// Mutating the original leaves the copy untouched.
	task.Title = "renamed"
	task.MarkCompleted(now)
	assert.Equal(t, "standup", copied.Title)
	assert.False(t, copied.Completed)
}

// Snapshot reads must be safe while another goroutine mutates the
// collection. Meaningful under -race.
func TestSnapshotDuringMutations(t *testing.T) {
	s := store.New()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = s.Snapshot()
			_ = s.Statistics(now)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			task := newTask("tick", dueIn(1), 2, "")
			s.Add(task)
			s.Complete(task.ID, now)
		}
	}()
	wg.Wait()

	assert.Equal(t, 200, s.Len())
}
