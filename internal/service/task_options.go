package service

import (
	"strings"
	"time"

	"deadline-reminder/internal/model"
)

// TaskOption mutates one field of a task during an update.
type TaskOption func(*model.Task)

func WithTitle(title string) TaskOption {
	return func(task *model.Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *model.Task) {
		task.Description = description
	}
}

func WithDeadline(deadline time.Time) TaskOption {
	return func(task *model.Task) {
		task.DeadlineDate = model.DateOf(deadline)
	}
}

// WithDeadlineTime sets or clears the time-of-day.
func WithDeadlineTime(deadlineTime *model.TimeOfDay) TaskOption {
	return func(task *model.Task) {
		task.DeadlineTime = deadlineTime
	}
}

func WithPriority(priority model.Priority) TaskOption {
	if !priority.Valid() {
		return func(*model.Task) {}
	}
	return func(task *model.Task) {
		task.Priority = priority
	}
}

func WithCategory(category string) TaskOption {
	return func(task *model.Task) {
		category = strings.ToLower(strings.TrimSpace(category))
		if category == "" {
			category = model.DefaultCategory
		}
		task.Category = category
	}
}

// WithCompletionReset returns a completed task to the pending state.
func WithCompletionReset() TaskOption {
	return func(task *model.Task) {
		task.ResetCompletion()
	}
}
