package console

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// exportTasks writes the full task list with a statistics header to a
// timestamped text file and prints its name.
func (c *Console) exportTasks(now time.Time) error {
	filename := fmt.Sprintf("task_export_%s.txt", now.Format("20060102_150405"))

	stats := c.taskSvc.Statistics(now)
	var b strings.Builder
	b.WriteString("DEADLINE REMINDER - TASK EXPORT\n")
	b.WriteString(strings.Repeat("=", 50))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Exported on: %s\n\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total tasks: %d\n", stats.Total)
	fmt.Fprintf(&b, "Completed:   %d\n", stats.Completed)
	fmt.Fprintf(&b, "Pending:     %d\n", stats.Pending)
	fmt.Fprintf(&b, "Overdue:     %d\n\n", stats.Overdue)

	b.WriteString("ALL TASKS:\n")
	b.WriteString(strings.Repeat("-", 50))
	b.WriteByte('\n')
	for _, task := range c.taskSvc.All() {
		fmt.Fprintf(&b, "Title: %s\n", task.Title)
		fmt.Fprintf(&b, "Description: %s\n", task.Description)
		fmt.Fprintf(&b, "Deadline: %s", task.DeadlineDate.Format(dateLayout))
		if task.DeadlineTime != nil {
			fmt.Fprintf(&b, " %s", task.DeadlineTime)
		}
		b.WriteByte('\n')
		fmt.Fprintf(&b, "Priority: %s\n", task.Priority)
		fmt.Fprintf(&b, "Category: %s\n", task.Category)
		status := "Pending"
		if task.Completed {
			status = "Completed"
		}
		fmt.Fprintf(&b, "Status: %s\n", status)
		fmt.Fprintf(&b, "Urgency: %s\n", task.UrgencyLevel(now))
		b.WriteString(strings.Repeat("-", 30))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(filename, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("export tasks: %w", err)
	}
	fmt.Fprintf(c.out, "Exported to %s\n", filename)
	return nil
}
