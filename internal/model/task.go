package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority levels, lower value means more important.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Valid reports whether p is one of the three known levels.
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// Urgency classifies how soon a task needs attention.
type Urgency string

const (
	UrgencyCompleted Urgency = "completed"
	UrgencyOverdue   Urgency = "overdue"
	UrgencyCritical  Urgency = "critical"
	UrgencyHigh      Urgency = "high"
	UrgencyMedium    Urgency = "medium"
	UrgencyLow       Urgency = "low"
)

// RecurrenceUnit is the granularity of a repeating schedule.
type RecurrenceUnit string

const (
	RecurDaily   RecurrenceUnit = "daily"
	RecurWeekly  RecurrenceUnit = "weekly"
	RecurMonthly RecurrenceUnit = "monthly"
)

// Recurrence is the variant payload carried only by recurring tasks.
// OriginalDeadline is the first deadline of this chain link and never
// changes after construction.
type Recurrence struct {
	Unit             RecurrenceUnit
	Interval         int
	OriginalDeadline time.Time
}

// DefaultCategory is assigned when a task is created with no category.
const DefaultCategory = "general"

// Task is a single item in the planner. A nil Recurrence means a
// regular one-off task; a non-nil one makes it recurring.
type Task struct {
	ID           string
	Title        string
	Description  string
	DeadlineDate time.Time
	DeadlineTime *TimeOfDay
	Priority     Priority
	Category     string
	Completed    bool
	CompletedAt  *time.Time
	CreatedAt    time.Time
	Recurrence   *Recurrence
}

// DateOf strips the clock from t, keeping only the calendar day.
// Dates are naive: normalized to UTC midnight so day arithmetic stays
// exact across DST changes of the local zone.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Date builds a naive calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// New creates a regular task. An empty deadline defaults to the
// current day, an empty category to DefaultCategory, and an invalid
// priority to medium.
func New(now time.Time, title, description string, deadline time.Time, deadlineTime *TimeOfDay, priority Priority, category string) *Task {
	if deadline.IsZero() {
		deadline = DateOf(now)
	} else {
		deadline = DateOf(deadline)
	}
	if !priority.Valid() {
		priority = PriorityMedium
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = DefaultCategory
	}
	return &Task{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  description,
		DeadlineDate: deadline,
		DeadlineTime: deadlineTime,
		Priority:     priority,
		Category:     category,
		CreatedAt:    now,
	}
}

// NewRecurring creates a recurring task. The first deadline doubles as
// the immutable original deadline. An interval below one is raised to
// one.
func NewRecurring(now time.Time, title, description string, deadline time.Time, deadlineTime *TimeOfDay, priority Priority, category string, unit RecurrenceUnit, interval int) *Task {
	task := New(now, title, description, deadline, deadlineTime, priority, category)
	if interval < 1 {
		interval = 1
	}
	task.Recurrence = &Recurrence{
		Unit:             unit,
		Interval:         interval,
		OriginalDeadline: task.DeadlineDate,
	}
	return task
}

// IsRecurring reports whether the task repeats after completion.
func (t *Task) IsRecurring() bool {
	return t.Recurrence != nil
}

// DaysUntil returns deadline minus today in whole days; negative when
// the deadline has passed, zero when due today.
func (t *Task) DaysUntil(now time.Time) int {
	return int(t.DeadlineDate.Sub(DateOf(now)).Hours() / 24)
}

// IsOverdue reports whether the deadline has passed. Completed tasks
// are never overdue. A task due today counts as overdue only once its
// time-of-day has passed; without one it stays current until the date
// rolls over.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	today := DateOf(now)
	if t.DeadlineDate.Before(today) {
		return true
	}
	if t.DeadlineDate.Equal(today) && t.DeadlineTime != nil {
		current := TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}
		return t.DeadlineTime.Before(current)
	}
	return false
}

// UrgencyLevel classifies the task from its priority and remaining
// days. Completion and overdue-ness short-circuit the table. Recurring
// tasks are demoted one step (critical to high, high to medium) since
// a repeating obligation is less singularly urgent than a one-off.
func (t *Task) UrgencyLevel(now time.Time) Urgency {
	if t.Completed {
		return UrgencyCompleted
	}
	if t.IsOverdue(now) {
		return UrgencyOverdue
	}

	level := baseUrgency(t.Priority, t.DaysUntil(now))
	if t.IsRecurring() {
		switch level {
		case UrgencyCritical:
			return UrgencyHigh
		case UrgencyHigh:
			return UrgencyMedium
		}
	}
	return level
}

func baseUrgency(priority Priority, daysLeft int) Urgency {
	switch priority {
	case PriorityHigh:
		switch {
		case daysLeft <= 1:
			return UrgencyCritical
		case daysLeft <= 3:
			return UrgencyHigh
		default:
			return UrgencyMedium
		}
	case PriorityMedium:
		switch {
		case daysLeft <= 0:
			return UrgencyCritical
		case daysLeft <= 2:
			return UrgencyHigh
		case daysLeft <= 5:
			return UrgencyMedium
		default:
			return UrgencyLow
		}
	default:
		switch {
		case daysLeft <= 0:
			return UrgencyHigh
		case daysLeft <= 3:
			return UrgencyMedium
		default:
			return UrgencyLow
		}
	}
}

// MarkCompleted flags the task done at the given instant. Calling it
// on an already completed task overwrites CompletedAt with the later
// instant; callers that care must check Completed first.
func (t *Task) MarkCompleted(now time.Time) {
	t.Completed = true
	t.CompletedAt = &now
}

// ResetCompletion returns the task to the pending state.
func (t *Task) ResetCompletion() {
	t.Completed = false
	t.CompletedAt = nil
}

// NextDeadline computes the deadline of the following cycle. Months
// are approximated as 30 days; there is no calendar-month arithmetic.
// For a non-recurring task the current deadline is returned unchanged.
func (t *Task) NextDeadline() time.Time {
	if t.Recurrence == nil {
		return t.DeadlineDate
	}
	switch t.Recurrence.Unit {
	case RecurDaily:
		return t.DeadlineDate.AddDate(0, 0, t.Recurrence.Interval)
	case RecurWeekly:
		return t.DeadlineDate.AddDate(0, 0, 7*t.Recurrence.Interval)
	case RecurMonthly:
		return t.DeadlineDate.AddDate(0, 0, 30*t.Recurrence.Interval)
	default:
		return t.DeadlineDate
	}
}

// NextOccurrence builds the fresh pending task that continues a
// recurring chain: same title, description, priority, category, time
// of day and recurrence settings, a new id, and the next deadline.
// Returns nil for non-recurring tasks.
func (t *Task) NextOccurrence(now time.Time) *Task {
	if t.Recurrence == nil {
		return nil
	}
	return NewRecurring(now, t.Title, t.Description, t.NextDeadline(), t.DeadlineTime,
		t.Priority, t.Category, t.Recurrence.Unit, t.Recurrence.Interval)
}

// Clone returns an independent copy of the task, pointer fields
// included.
func (t *Task) Clone() *Task {
	clone := *t
	if t.DeadlineTime != nil {
		deadlineTime := *t.DeadlineTime
		clone.DeadlineTime = &deadlineTime
	}
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		clone.CompletedAt = &completedAt
	}
	if t.Recurrence != nil {
		recurrence := *t.Recurrence
		clone.Recurrence = &recurrence
	}
	return &clone
}
