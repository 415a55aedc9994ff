package console

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"deadline-reminder/internal/model"
)

const dateLayout = "2006-01-02"

func (c *Console) renderTaskTable(title string, tasks []*model.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintf(c.out, "\n%s: no tasks\n", title)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s:\n", title)
	b.WriteString(strings.Repeat("-", 86))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%-3s %-28s %-12s %-6s %-8s %-10s %-10s\n",
		"No", "Title", "Deadline", "Time", "Prior", "Status", "Urgency")
	b.WriteString(strings.Repeat("-", 86))
	b.WriteByte('\n')

	for i, task := range tasks {
		timeStr := "-"
		if task.DeadlineTime != nil {
			timeStr = task.DeadlineTime.String()
		}
		status := "pending"
		if task.Completed {
			status = "done"
		}
		name := task.Title
		// Truncate by runes so a multi-byte title is never split
		// mid-character.
		if runes := []rune(name); len(runes) > 27 {
			name = string(runes[:27])
		}
		if task.IsRecurring() {
			status += " *"
		}
		fmt.Fprintf(&b, "%-3d %-28s %-12s %-6s %-8s %-10s %-10s\n",
			i+1, name, task.DeadlineDate.Format(dateLayout), timeStr,
			task.Priority, status, task.UrgencyLevel(now))
	}
	b.WriteString(strings.Repeat("-", 86))
	b.WriteByte('\n')
	fmt.Fprint(c.out, b.String())
}

// renderReminders prints the urgent / upcoming / overdue digest.
func (c *Console) renderReminders(now time.Time) {
	urgent := c.reminderSvc.Urgent(now)
	upcoming := c.reminderSvc.Upcoming(now)
	overdue := c.reminderSvc.Overdue(now)

	var b strings.Builder
	b.WriteString("\nReminders\n")
	b.WriteString(strings.Repeat("-", 40))
	b.WriteByte('\n')

	if len(urgent) == 0 && len(upcoming) == 0 && len(overdue) == 0 {
		b.WriteString("Nothing needs attention right now.\n")
		fmt.Fprint(c.out, b.String())
		return
	}

	if len(urgent) > 0 {
		b.WriteString("URGENT (due today or overdue):\n")
		for _, task := range urgent {
			b.WriteString("  • " + formatTaskLine(task, now) + "\n")
		}
	}
	if len(upcoming) > 0 {
		fmt.Fprintf(&b, "Upcoming:\n")
		for _, task := range upcoming {
			fmt.Fprintf(&b, "  • %s (%d day(s) left)\n", formatTaskLine(task, now), task.DaysUntil(now))
		}
	}
	if len(overdue) > 0 {
		b.WriteString("Overdue:\n")
		for _, task := range overdue {
			fmt.Fprintf(&b, "  • %s (%d day(s) late)\n", task.Title, -task.DaysUntil(now))
		}
	}
	fmt.Fprint(c.out, b.String())
}

func (c *Console) renderStatistics(now time.Time) {
	stats := c.taskSvc.Statistics(now)

	var b strings.Builder
	b.WriteString("\nStatistics\n")
	b.WriteString(strings.Repeat("-", 30))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Total:           %d\n", stats.Total)
	fmt.Fprintf(&b, "Completed:       %d\n", stats.Completed)
	fmt.Fprintf(&b, "Pending:         %d\n", stats.Pending)
	fmt.Fprintf(&b, "Overdue:         %d\n", stats.Overdue)
	fmt.Fprintf(&b, "Completion rate: %.1f%%\n", stats.CompletionRate)

	b.WriteString("By priority:\n")
	for _, priority := range []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		fmt.Fprintf(&b, "  %-8s %d\n", priority.String()+":", stats.ByPriority[priority])
	}

	if len(stats.ByCategory) > 0 {
		b.WriteString("By category:\n")
		categories := make([]string, 0, len(stats.ByCategory))
		for category := range stats.ByCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			fmt.Fprintf(&b, "  %-12s %d\n", category+":", stats.ByCategory[category])
		}
	}
	fmt.Fprint(c.out, b.String())
}

func (c *Console) renderWeeklyOutlook(now time.Time) {
	var b strings.Builder
	b.WriteString("\nWeekly outlook\n")
	b.WriteString(strings.Repeat("-", 40))
	b.WriteByte('\n')
	for _, day := range c.reminderSvc.WeeklyOutlook(now) {
		name := day.Weekday
		if day.IsToday {
			name += " (today)"
		}
		marker := ""
		if day.HasHighPriority {
			marker = " !"
		}
		fmt.Fprintf(&b, "%-20s %s  %d task(s)%s\n", name, day.Date.Format(dateLayout), day.TaskCount, marker)
		for _, task := range day.Tasks {
			fmt.Fprintf(&b, "    • %s\n", task.Title)
		}
	}
	fmt.Fprint(c.out, b.String())
}

func (c *Console) renderRecommendations(now time.Time) {
	var b strings.Builder
	b.WriteString("\nRecommendations\n")
	b.WriteString(strings.Repeat("-", 40))
	b.WriteByte('\n')

	recommendations := c.reminderSvc.Recommendations(now)
	if len(recommendations) == 0 {
		b.WriteString("All good, keep it up.\n")
	}
	for _, recommendation := range recommendations {
		b.WriteString("  • " + recommendation + "\n")
	}

	suggestion := c.reminderSvc.ScheduleSuggestion()
	if len(suggestion.Morning)+len(suggestion.Afternoon)+len(suggestion.Evening) > 0 {
		b.WriteString("Suggested schedule:\n")
		writeSlot(&b, "morning", suggestion.Morning)
		writeSlot(&b, "afternoon", suggestion.Afternoon)
		writeSlot(&b, "evening", suggestion.Evening)
	}

	report := c.reminderSvc.ProductivityReport()
	if report.TotalCompleted > 0 {
		fmt.Fprintf(&b, "Completed so far: %d (most productive category: %s)\n",
			report.TotalCompleted, report.MostProductiveCategory)
	}
	fmt.Fprint(c.out, b.String())
}

func writeSlot(b *strings.Builder, slot string, titles []string) {
	if len(titles) == 0 {
		return
	}
	fmt.Fprintf(b, "  %-10s %s\n", slot+":", strings.Join(titles, ", "))
}

func formatTaskLine(task *model.Task, now time.Time) string {
	line := task.Title + " - " + task.DeadlineDate.Format(dateLayout)
	if task.DeadlineTime != nil {
		line += " " + task.DeadlineTime.String()
	}
	if task.IsOverdue(now) {
		line += " [overdue]"
	}
	return line
}
