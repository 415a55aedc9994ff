package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deadline-reminder/internal/model"
)

// A fixed reference instant: Wednesday 2024-01-10, noon.
var now = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func dueIn(days int) time.Time {
	return model.DateOf(now).AddDate(0, 0, days)
}

func TestNewDefaults(t *testing.T) {
	task := model.New(now, "write report", "", time.Time{}, nil, 0, "  Work ")

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, model.DateOf(now), task.DeadlineDate, "empty deadline defaults to today")
	assert.Equal(t, model.PriorityMedium, task.Priority, "invalid priority defaults to medium")
	assert.Equal(t, "work", task.Category, "category is trimmed and lowercased")
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.False(t, task.IsRecurring())

	blank := model.New(now, "x", "", dueIn(1), nil, model.PriorityLow, "")
	assert.Equal(t, model.DefaultCategory, blank.Category)
}

func TestNewRecurringDefaults(t *testing.T) {
	task := model.NewRecurring(now, "water plants", "", dueIn(2), nil, model.PriorityLow, "home", model.RecurDaily, 0)

	require.True(t, task.IsRecurring())
	assert.Equal(t, 1, task.Recurrence.Interval, "interval below one is raised to one")
	assert.Equal(t, task.DeadlineDate, task.Recurrence.OriginalDeadline)
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 0, model.New(now, "t", "", dueIn(0), nil, 2, "").DaysUntil(now))
	assert.Equal(t, 5, model.New(now, "t", "", dueIn(5), nil, 2, "").DaysUntil(now))
	assert.Equal(t, -3, model.New(now, "t", "", dueIn(-3), nil, 2, "").DaysUntil(now))
}

func TestIsOverdue(t *testing.T) {
	past := timeOfDay(9, 0) // earlier than the noon reference
	future := timeOfDay(18, 30)

	tests := []struct {
		name     string
		deadline time.Time
		timeOf   *model.TimeOfDay
		complete bool
		want     bool
	}{
		{"yesterday", dueIn(-1), nil, false, true},
		{"tomorrow", dueIn(1), nil, false, false},
		{"today without time never overdue", dueIn(0), nil, false, false},
		{"today with passed time", dueIn(0), past, false, true},
		{"today with future time", dueIn(0), future, false, false},
		{"completed task never overdue", dueIn(-10), nil, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := model.New(now, "t", "", tt.deadline, tt.timeOf, 2, "")
			if tt.complete {
				task.MarkCompleted(now)
			}
			assert.Equal(t, tt.want, task.IsOverdue(now))
		})
	}
}

func TestUrgencyLevelTable(t *testing.T) {
	tests := []struct {
		priority model.Priority
		daysLeft int
		want     model.Urgency
	}{
		{model.PriorityHigh, 0, model.UrgencyCritical},
		{model.PriorityHigh, 1, model.UrgencyCritical},
		{model.PriorityHigh, 2, model.UrgencyHigh},
		{model.PriorityHigh, 3, model.UrgencyHigh},
		{model.PriorityHigh, 4, model.UrgencyMedium},
		{model.PriorityHigh, 30, model.UrgencyMedium},
		{model.PriorityMedium, 0, model.UrgencyCritical},
		{model.PriorityMedium, 1, model.UrgencyHigh},
		{model.PriorityMedium, 2, model.UrgencyHigh},
		{model.PriorityMedium, 3, model.UrgencyMedium},
		{model.PriorityMedium, 5, model.UrgencyMedium},
		{model.PriorityMedium, 6, model.UrgencyLow},
		{model.PriorityLow, 0, model.UrgencyHigh},
		{model.PriorityLow, 1, model.UrgencyMedium},
		{model.PriorityLow, 3, model.UrgencyMedium},
		{model.PriorityLow, 4, model.UrgencyLow},
		{model.PriorityLow, 10, model.UrgencyLow},
	}
	for _, tt := range tests {
		task := model.New(now, "t", "", dueIn(tt.daysLeft), nil, tt.priority, "")
		assert.Equalf(t, tt.want, task.UrgencyLevel(now),
			"priority %s with %d day(s) left", tt.priority, tt.daysLeft)
	}
}

func TestUrgencyLevelRecurringDemotion(t *testing.T) {
	tests := []struct {
		priority model.Priority
		daysLeft int
		want     model.Urgency
	}{
		{model.PriorityHigh, 1, model.UrgencyHigh},   // critical demotes to high
		{model.PriorityHigh, 2, model.UrgencyMedium}, // high demotes to medium
		{model.PriorityHigh, 4, model.UrgencyMedium}, // medium passes through
		{model.PriorityLow, 10, model.UrgencyLow},    // low passes through
	}
	for _, tt := range tests {
		task := model.NewRecurring(now, "t", "", dueIn(tt.daysLeft), nil, tt.priority, "", model.RecurDaily, 1)
		assert.Equalf(t, tt.want, task.UrgencyLevel(now),
			"recurring priority %s with %d day(s) left", tt.priority, tt.daysLeft)
	}
}

func TestUrgencyLevelShortCircuits(t *testing.T) {
	done := model.New(now, "t", "", dueIn(-5), nil, model.PriorityHigh, "")
	done.MarkCompleted(now)
	assert.Equal(t, model.UrgencyCompleted, done.UrgencyLevel(now))

	late := model.New(now, "t", "", dueIn(-5), nil, model.PriorityLow, "")
	assert.Equal(t, model.UrgencyOverdue, late.UrgencyLevel(now))

	lateRecurring := model.NewRecurring(now, "t", "", dueIn(-5), nil, model.PriorityLow, "", model.RecurDaily, 1)
	assert.Equal(t, model.UrgencyOverdue, lateRecurring.UrgencyLevel(now), "overdue is not demoted")
}

func TestMarkCompletedOverwritesTimestamp(t *testing.T) {
	task := model.New(now, "t", "", dueIn(1), nil, 2, "")
	task.MarkCompleted(now)
	require.NotNil(t, task.CompletedAt)
	first := *task.CompletedAt

	later := now.Add(time.Hour)
	task.MarkCompleted(later)
	assert.True(t, task.Completed)
	assert.True(t, task.CompletedAt.After(first), "second completion overwrites the timestamp")

	task.ResetCompletion()
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
}

func TestNextDeadline(t *testing.T) {
	base := model.Date(2024, time.January, 1)

	tests := []struct {
		unit     model.RecurrenceUnit
		interval int
		want     time.Time
	}{
		{model.RecurDaily, 3, model.Date(2024, time.January, 4)},
		{model.RecurWeekly, 2, model.Date(2024, time.January, 15)},
		// Months are a flat 30-day approximation.
		{model.RecurMonthly, 1, model.Date(2024, time.January, 31)},
	}
	for _, tt := range tests {
		task := model.NewRecurring(now, "t", "", base, nil, 2, "", tt.unit, tt.interval)
		assert.Equalf(t, tt.want, task.NextDeadline(), "%s interval %d", tt.unit, tt.interval)
	}

	regular := model.New(now, "t", "", base, nil, 2, "")
	assert.Equal(t, base, regular.NextDeadline(), "regular task keeps its deadline")
}

func TestNextOccurrence(t *testing.T) {
	task := model.NewRecurring(now, "standup notes", "daily log", model.Date(2024, time.January, 1),
		timeOfDay(9, 30), model.PriorityHigh, "work", model.RecurDaily, 3)
	task.MarkCompleted(now)

	next := task.NextOccurrence(now)
	require.NotNil(t, next)
	assert.Equal(t, model.Date(2024, time.January, 4), next.DeadlineDate)
	assert.Equal(t, task.Title, next.Title)
	assert.Equal(t, task.Description, next.Description)
	assert.Equal(t, task.Priority, next.Priority)
	assert.Equal(t, task.Category, next.Category)
	assert.Equal(t, task.DeadlineTime, next.DeadlineTime)
	assert.Equal(t, task.Recurrence.Unit, next.Recurrence.Unit)
	assert.Equal(t, task.Recurrence.Interval, next.Recurrence.Interval)
	assert.NotEqual(t, task.ID, next.ID)
	assert.False(t, next.Completed)
	assert.Nil(t, next.CompletedAt)

	// The completed instance is untouched history.
	assert.True(t, task.Completed)
	assert.Equal(t, model.Date(2024, time.January, 1), task.DeadlineDate)

	regular := model.New(now, "t", "", dueIn(1), nil, 2, "")
	assert.Nil(t, regular.NextOccurrence(now))
}

func TestParseTimeOfDay(t *testing.T) {
	parsed, err := model.ParseTimeOfDay("09:05")
	require.NoError(t, err)
	assert.Equal(t, model.TimeOfDay{Hour: 9, Minute: 5}, parsed)
	assert.Equal(t, "09:05", parsed.String())
	assert.Equal(t, 545, parsed.MinutesOfDay())

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd"} {
		_, err := model.ParseTimeOfDay(bad)
		assert.Errorf(t, err, "input %q", bad)
	}
}

func timeOfDay(hour, minute int) *model.TimeOfDay {
	return &model.TimeOfDay{Hour: hour, Minute: minute}
}
