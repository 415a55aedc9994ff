package service

import (
	"sort"
	"time"

	"deadline-reminder/internal/model"
	"deadline-reminder/internal/store"
)

// ReminderSettings tunes the aggregation windows.
type ReminderSettings struct {
	// UpcomingThreshold is how many days ahead Upcoming looks.
	UpcomingThreshold int
}

// DefaultUpcomingThreshold is used when no threshold is configured.
const DefaultUpcomingThreshold = 3

// ReminderService buckets the store's tasks into urgent, upcoming and
// overdue views and builds daily and weekly summaries. It exposes data
// only; rendering belongs to the presentation layer.
type ReminderService struct {
	store    *store.Store
	settings ReminderSettings
}

func NewReminderService(st *store.Store, settings ReminderSettings) *ReminderService {
	if settings.UpcomingThreshold <= 0 {
		settings.UpcomingThreshold = DefaultUpcomingThreshold
	}
	return &ReminderService{store: st, settings: settings}
}

// Urgent returns tasks needing attention right now: pending tasks due
// today plus anything overdue. Duplicates are removed by id, first
// occurrence wins, and the result is ordered by deadline date then
// priority (high first).
func (s *ReminderService) Urgent(now time.Time) []*model.Task {
	today := model.DateOf(now)

	var urgent []*model.Task
	for _, task := range s.store.PendingTasks() {
		if task.DeadlineDate.Equal(today) {
			urgent = append(urgent, task)
		}
	}
	urgent = append(urgent, s.store.Overdue(now)...)

	seen := make(map[string]bool, len(urgent))
	unique := urgent[:0]
	for _, task := range urgent {
		if seen[task.ID] {
			continue
		}
		seen[task.ID] = true
		unique = append(unique, task)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		if !unique[i].DeadlineDate.Equal(unique[j].DeadlineDate) {
			return unique[i].DeadlineDate.Before(unique[j].DeadlineDate)
		}
		return unique[i].Priority < unique[j].Priority
	})
	return unique
}

// Upcoming returns pending tasks due within the configured threshold,
// excluding those due today: today's tasks belong only to Urgent.
func (s *ReminderService) Upcoming(now time.Time) []*model.Task {
	today := model.DateOf(now)
	var upcoming []*model.Task
	for _, task := range s.store.Upcoming(now, s.settings.UpcomingThreshold) {
		if task.DeadlineDate.Equal(today) {
			continue
		}
		upcoming = append(upcoming, task)
	}
	return upcoming
}

// Overdue returns every overdue task.
func (s *ReminderService) Overdue(now time.Time) []*model.Task {
	return s.store.Overdue(now)
}

// ByUrgency returns pending tasks classified at the given level.
func (s *ReminderService) ByUrgency(now time.Time, level model.Urgency) []*model.Task {
	var matched []*model.Task
	for _, task := range s.store.PendingTasks() {
		if task.UrgencyLevel(now) == level {
			matched = append(matched, task)
		}
	}
	return matched
}

// PendingByPriority returns pending tasks with the given priority.
func (s *ReminderService) PendingByPriority(priority model.Priority) []*model.Task {
	var matched []*model.Task
	for _, task := range s.store.PendingTasks() {
		if task.Priority == priority {
			matched = append(matched, task)
		}
	}
	return matched
}

// DailySummary is a snapshot of one day's workload.
type DailySummary struct {
	Date                time.Time
	UrgentCount         int
	UpcomingCount       int
	OverdueCount        int
	TotalPending        int
	TodayTasks          []*model.Task
	HighPriorityPending int
	CompletionRate      float64
}

// DailySummary aggregates today's counts and tasks.
func (s *ReminderService) DailySummary(now time.Time) DailySummary {
	today := model.DateOf(now)
	return DailySummary{
		Date:                today,
		UrgentCount:         len(s.Urgent(now)),
		UpcomingCount:       len(s.Upcoming(now)),
		OverdueCount:        len(s.Overdue(now)),
		TotalPending:        len(s.store.PendingTasks()),
		TodayTasks:          s.store.ByDate(today),
		HighPriorityPending: len(s.PendingByPriority(model.PriorityHigh)),
		CompletionRate:      s.store.Statistics(now).CompletionRate,
	}
}

// DayOutlook is one day of the weekly outlook.
type DayOutlook struct {
	Date            time.Time
	Weekday         string
	IsToday         bool
	TaskCount       int
	Tasks           []*model.Task
	HasHighPriority bool
}

// WeeklyOutlook returns seven entries, one per day from today through
// today+6.
func (s *ReminderService) WeeklyOutlook(now time.Time) []DayOutlook {
	today := model.DateOf(now)
	outlook := make([]DayOutlook, 0, 7)
	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, i)
		tasks := s.store.ByDate(date)
		day := DayOutlook{
			Date:      date,
			Weekday:   date.Weekday().String(),
			IsToday:   i == 0,
			TaskCount: len(tasks),
			Tasks:     tasks,
		}
		for _, task := range tasks {
			if task.Priority == model.PriorityHigh {
				day.HasHighPriority = true
				break
			}
		}
		outlook = append(outlook, day)
	}
	return outlook
}

// Recommendations derives advisory hints from the store's statistics.
// The thresholds are fixed for compatibility with existing planners:
// completion rate below 70%, more than three overdue tasks, a single
// category in use, and high-priority count above medium plus low.
func (s *ReminderService) Recommendations(now time.Time) []string {
	stats := s.store.Statistics(now)

	var recommendations []string
	if stats.CompletionRate < 70 {
		recommendations = append(recommendations, "Consider breaking large tasks into smaller ones")
	}
	if stats.Overdue > 3 {
		recommendations = append(recommendations, "You have many overdue tasks, consider rescheduling or prioritizing")
	}
	if len(stats.ByCategory) == 1 {
		recommendations = append(recommendations, "Try categorizing your tasks for better organization")
	}
	if stats.ByPriority[model.PriorityHigh] > stats.ByPriority[model.PriorityMedium]+stats.ByPriority[model.PriorityLow] {
		recommendations = append(recommendations, "Consider if all high-priority tasks are truly urgent")
	}
	return recommendations
}

// ScheduleSuggestion splits the most pressing pending tasks across the
// day: up to three high-priority titles in the morning, two medium in
// the afternoon, one low in the evening.
type ScheduleSuggestion struct {
	Morning   []string
	Afternoon []string
	Evening   []string
}

func (s *ReminderService) ScheduleSuggestion() ScheduleSuggestion {
	var suggestion ScheduleSuggestion
	for _, task := range firstN(s.PendingByPriority(model.PriorityHigh), 3) {
		suggestion.Morning = append(suggestion.Morning, task.Title)
	}
	for _, task := range firstN(s.PendingByPriority(model.PriorityMedium), 2) {
		suggestion.Afternoon = append(suggestion.Afternoon, task.Title)
	}
	for _, task := range firstN(s.PendingByPriority(model.PriorityLow), 1) {
		suggestion.Evening = append(suggestion.Evening, task.Title)
	}
	return suggestion
}

// ProductivityReport breaks down completed work by category.
type ProductivityReport struct {
	TotalCompleted         int
	CategoryBreakdown      map[string]int
	MostProductiveCategory string
}

func (s *ReminderService) ProductivityReport() ProductivityReport {
	completed := s.store.CompletedTasks()
	report := ProductivityReport{
		TotalCompleted:    len(completed),
		CategoryBreakdown: make(map[string]int),
	}
	best := 0
	for _, task := range completed {
		report.CategoryBreakdown[task.Category]++
		if count := report.CategoryBreakdown[task.Category]; count > best {
			best = count
			report.MostProductiveCategory = task.Category
		}
	}
	return report
}

func firstN(tasks []*model.Task, n int) []*model.Task {
	if len(tasks) > n {
		return tasks[:n]
	}
	return tasks
}
