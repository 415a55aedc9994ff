// Package console is the interactive presentation layer: a menu-driven
// session over stdin/stdout. It renders data produced by the services
// and never computes urgency or reminder semantics itself.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"deadline-reminder/internal/model"
	"deadline-reminder/internal/service"
)

// Console drives one interactive session.
type Console struct {
	in          *bufio.Reader
	out         io.Writer
	taskSvc     *service.TaskService
	reminderSvc *service.ReminderService
	cleanupDays int
	// clock is the single place the wall clock is read; everything
	// below the console takes an explicit instant.
	clock func() time.Time
}

func New(in io.Reader, out io.Writer, taskSvc *service.TaskService, reminderSvc *service.ReminderService, cleanupDays int) *Console {
	return &Console{
		in:          bufio.NewReader(in),
		out:         out,
		taskSvc:     taskSvc,
		reminderSvc: reminderSvc,
		cleanupDays: cleanupDays,
		clock:       time.Now,
	}
}

// Run loops over the menu until the user quits or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Welcome to Deadline Reminder!")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.printMenu()
		// The prompt blocks on stdin, so cancellation is observed
		// between prompts, not mid-read. The final snapshot in main
		// still runs either way.
		choice, err := c.prompt("Choose an option: ")
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read choice: %w", err)
		}

		now := c.clock()
		switch choice {
		case "1":
			err = c.addTask(ctx, now)
		case "2":
			c.renderTaskTable("All tasks", c.taskSvc.All(), now)
		case "3":
			c.renderTaskTable("Today's tasks", c.taskSvc.ByDate(now), now)
		case "4":
			c.renderTaskTable("Upcoming tasks", c.reminderSvc.Upcoming(now), now)
		case "5":
			err = c.completeTask(ctx, now)
		case "6":
			err = c.deleteTask(ctx)
		case "7":
			c.renderReminders(now)
		case "8":
			c.renderStatistics(now)
		case "9":
			c.renderWeeklyOutlook(now)
		case "10":
			c.renderRecommendations(now)
		case "11":
			err = c.searchTasks(now)
		case "12":
			err = c.exportTasks(now)
		case "13":
			err = c.cleanup(ctx, now)
		case "14", "q", "quit", "exit":
			fmt.Fprintln(c.out, "Bye!")
			return nil
		default:
			fmt.Fprintln(c.out, "Unknown option.")
		}
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, strings.Repeat("=", 40))
	fmt.Fprintln(c.out, "  DEADLINE REMINDER")
	fmt.Fprintln(c.out, strings.Repeat("=", 40))
	fmt.Fprintln(c.out, " 1. Add task")
	fmt.Fprintln(c.out, " 2. All tasks")
	fmt.Fprintln(c.out, " 3. Today's tasks")
	fmt.Fprintln(c.out, " 4. Upcoming tasks")
	fmt.Fprintln(c.out, " 5. Complete task")
	fmt.Fprintln(c.out, " 6. Delete task")
	fmt.Fprintln(c.out, " 7. Reminders")
	fmt.Fprintln(c.out, " 8. Statistics")
	fmt.Fprintln(c.out, " 9. Weekly outlook")
	fmt.Fprintln(c.out, "10. Recommendations")
	fmt.Fprintln(c.out, "11. Search")
	fmt.Fprintln(c.out, "12. Export")
	fmt.Fprintln(c.out, "13. Cleanup old completed tasks")
	fmt.Fprintln(c.out, "14. Quit")
}

func (c *Console) addTask(ctx context.Context, now time.Time) error {
	title, err := c.prompt("Title: ")
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(c.out, "Title must not be empty.")
		return nil
	}
	description, err := c.prompt("Description (optional): ")
	if err != nil {
		return err
	}
	deadline, err := c.promptDate(now)
	if err != nil {
		return err
	}
	deadlineTime, err := c.promptTimeOfDay()
	if err != nil {
		return err
	}
	priority, err := c.promptPriority()
	if err != nil {
		return err
	}
	category, err := c.prompt("Category (optional): ")
	if err != nil {
		return err
	}

	input := service.TaskInput{
		Title:        title,
		Description:  description,
		Deadline:     deadline,
		DeadlineTime: deadlineTime,
		Priority:     priority,
		Category:     category,
	}

	recurring, err := c.prompt("Recurring? (y/N): ")
	if err != nil {
		return err
	}
	if strings.EqualFold(recurring, "y") || strings.EqualFold(recurring, "yes") {
		input.Recurring = true
		input.RecurrenceUnit, input.RecurrenceInterval, err = c.promptRecurrence()
		if err != nil {
			return err
		}
	}

	task, err := c.taskSvc.Create(ctx, now, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Added %q due %s.\n", task.Title, task.DeadlineDate.Format(dateLayout))
	return nil
}

func (c *Console) completeTask(ctx context.Context, now time.Time) error {
	pending := c.taskSvc.Pending()
	if len(pending) == 0 {
		fmt.Fprintln(c.out, "No pending tasks.")
		return nil
	}
	task, err := c.selectTask("Complete which task?", pending, now)
	if err != nil || task == nil {
		return err
	}
	if ok, err := c.taskSvc.Complete(ctx, now, task.ID); err != nil {
		return err
	} else if !ok {
		fmt.Fprintln(c.out, "Task not found.")
		return nil
	}
	fmt.Fprintf(c.out, "Completed %q.\n", task.Title)
	if task.IsRecurring() {
		fmt.Fprintf(c.out, "Next occurrence scheduled for %s.\n", task.NextDeadline().Format(dateLayout))
	}
	return nil
}

func (c *Console) deleteTask(ctx context.Context) error {
	now := c.clock()
	all := c.taskSvc.All()
	if len(all) == 0 {
		fmt.Fprintln(c.out, "Nothing to delete.")
		return nil
	}
	task, err := c.selectTask("Delete which task?", all, now)
	if err != nil || task == nil {
		return err
	}
	if ok, err := c.taskSvc.Delete(ctx, task.ID); err != nil {
		return err
	} else if !ok {
		fmt.Fprintln(c.out, "Task not found.")
		return nil
	}
	fmt.Fprintf(c.out, "Deleted %q.\n", task.Title)
	return nil
}

func (c *Console) searchTasks(now time.Time) error {
	query, err := c.prompt("Search query: ")
	if err != nil {
		return err
	}
	if query == "" {
		return nil
	}
	c.renderTaskTable(fmt.Sprintf("Results for %q", query), c.taskSvc.Search(query), now)
	return nil
}

func (c *Console) cleanup(ctx context.Context, now time.Time) error {
	removed, err := c.taskSvc.Cleanup(ctx, now, c.cleanupDays)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Removed %d completed task(s) older than %d days.\n", removed, c.cleanupDays)
	return nil
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) promptDate(now time.Time) (time.Time, error) {
	for {
		raw, err := c.prompt("Deadline (YYYY-MM-DD, empty for today): ")
		if err != nil {
			return time.Time{}, err
		}
		if raw == "" {
			return model.DateOf(now), nil
		}
		parsed, err := time.Parse(dateLayout, raw)
		if err == nil {
			return model.DateOf(parsed), nil
		}
		fmt.Fprintln(c.out, "Invalid date, use YYYY-MM-DD.")
	}
}

func (c *Console) promptTimeOfDay() (*model.TimeOfDay, error) {
	for {
		raw, err := c.prompt("Time (HH:MM, optional): ")
		if err != nil {
			return nil, err
		}
		if raw == "" {
			return nil, nil
		}
		parsed, err := model.ParseTimeOfDay(raw)
		if err == nil {
			return &parsed, nil
		}
		fmt.Fprintln(c.out, "Invalid time, use HH:MM.")
	}
}

func (c *Console) promptPriority() (model.Priority, error) {
	for {
		raw, err := c.prompt("Priority (1=high, 2=medium, 3=low): ")
		if err != nil {
			return 0, err
		}
		if raw == "" {
			return model.PriorityMedium, nil
		}
		value, err := strconv.Atoi(raw)
		if err == nil && model.Priority(value).Valid() {
			return model.Priority(value), nil
		}
		fmt.Fprintln(c.out, "Priority must be 1, 2 or 3.")
	}
}

func (c *Console) promptRecurrence() (model.RecurrenceUnit, int, error) {
	var unit model.RecurrenceUnit
	for {
		raw, err := c.prompt("Repeat (daily/weekly/monthly): ")
		if err != nil {
			return "", 0, err
		}
		switch model.RecurrenceUnit(strings.ToLower(raw)) {
		case model.RecurDaily, "":
			unit = model.RecurDaily
		case model.RecurWeekly:
			unit = model.RecurWeekly
		case model.RecurMonthly:
			unit = model.RecurMonthly
		default:
			fmt.Fprintln(c.out, "Choose daily, weekly or monthly.")
			continue
		}
		break
	}
	for {
		raw, err := c.prompt("Every how many (default 1): ")
		if err != nil {
			return "", 0, err
		}
		if raw == "" {
			return unit, 1, nil
		}
		value, err := strconv.Atoi(raw)
		if err == nil && value >= 1 {
			return unit, value, nil
		}
		fmt.Fprintln(c.out, "Interval must be a positive number.")
	}
}

// selectTask renders a numbered table and reads the user's pick.
// Returns nil without error when the input is empty.
func (c *Console) selectTask(label string, tasks []*model.Task, now time.Time) (*model.Task, error) {
	c.renderTaskTable(label, tasks, now)
	raw, err := c.prompt("Number (empty to cancel): ")
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	index, err := strconv.Atoi(raw)
	if err != nil || index < 1 || index > len(tasks) {
		fmt.Fprintln(c.out, "Invalid task number.")
		return nil, nil
	}
	return tasks[index-1], nil
}
