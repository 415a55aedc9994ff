package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"deadline-reminder/internal/logger"
	"deadline-reminder/internal/model"
)

const (
	typeRegular   = "regular"
	typeRecurring = "recurring"
)

// taskRecord is the durable row behind one task. The TaskType column
// discriminates regular from recurring rows; nullable columns keep the
// absence of a time-of-day or completion timestamp round-trippable.
type taskRecord struct {
	ID                 string `gorm:"primaryKey"`
	Title              string
	Description        string
	DeadlineDate       time.Time
	DeadlineTime       *string
	Priority           int
	Category           string
	Completed          bool
	CompletedAt        *time.Time
	CreatedAt          time.Time
	TaskType           string
	RecurrenceUnit     *string
	RecurrenceInterval *int
	OriginalDeadline   *time.Time
}

func (taskRecord) TableName() string { return "tasks" }

// TaskRepository stores the task set as a whole-snapshot record.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// SaveAll replaces the durable snapshot with the given tasks in one
// transaction.
func (r *TaskRepository) SaveAll(ctx context.Context, tasks []*model.Task) error {
	records := make([]taskRecord, 0, len(tasks))
	for _, task := range tasks {
		records = append(records, toRecord(task))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&taskRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// LoadAll reads the snapshot back into model tasks. Malformed rows
// (unknown discriminator, empty title) are skipped with a warning;
// missing recurrence fields default to daily with interval one.
func (r *TaskRepository) LoadAll(ctx context.Context) ([]*model.Task, error) {
	var records []taskRecord
	if err := r.db.WithContext(ctx).Order("created_at").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	tasks := make([]*model.Task, 0, len(records))
	for _, record := range records {
		task, err := fromRecord(record)
		if err != nil {
			logger.Warn("skipping malformed task record",
				zap.String("id", record.ID), zap.Error(err))
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func toRecord(task *model.Task) taskRecord {
	record := taskRecord{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		DeadlineDate: task.DeadlineDate,
		Priority:     int(task.Priority),
		Category:     task.Category,
		Completed:    task.Completed,
		CompletedAt:  task.CompletedAt,
		CreatedAt:    task.CreatedAt,
		TaskType:     typeRegular,
	}
	if task.DeadlineTime != nil {
		raw := task.DeadlineTime.String()
		record.DeadlineTime = &raw
	}
	if task.Recurrence != nil {
		record.TaskType = typeRecurring
		unit := string(task.Recurrence.Unit)
		interval := task.Recurrence.Interval
		original := task.Recurrence.OriginalDeadline
		record.RecurrenceUnit = &unit
		record.RecurrenceInterval = &interval
		record.OriginalDeadline = &original
	}
	return record
}

func fromRecord(record taskRecord) (*model.Task, error) {
	if record.Title == "" {
		return nil, fmt.Errorf("empty title")
	}
	if record.TaskType != typeRegular && record.TaskType != typeRecurring {
		return nil, fmt.Errorf("unknown task type %q", record.TaskType)
	}

	task := &model.Task{
		ID:           record.ID,
		Title:        record.Title,
		Description:  record.Description,
		DeadlineDate: model.DateOf(record.DeadlineDate),
		Priority:     model.Priority(record.Priority),
		Category:     record.Category,
		Completed:    record.Completed,
		CompletedAt:  record.CompletedAt,
		CreatedAt:    record.CreatedAt,
	}
	if record.DeadlineTime != nil {
		parsed, err := model.ParseTimeOfDay(*record.DeadlineTime)
		if err != nil {
			return nil, fmt.Errorf("deadline time: %w", err)
		}
		task.DeadlineTime = &parsed
	}
	if record.TaskType == typeRecurring {
		recurrence := &model.Recurrence{Unit: model.RecurDaily, Interval: 1}
		if record.RecurrenceUnit != nil {
			switch unit := model.RecurrenceUnit(*record.RecurrenceUnit); unit {
			case model.RecurDaily, model.RecurWeekly, model.RecurMonthly:
				recurrence.Unit = unit
			}
		}
		if record.RecurrenceInterval != nil && *record.RecurrenceInterval >= 1 {
			recurrence.Interval = *record.RecurrenceInterval
		}
		if record.OriginalDeadline != nil {
			recurrence.OriginalDeadline = model.DateOf(*record.OriginalDeadline)
		} else {
			recurrence.OriginalDeadline = task.DeadlineDate
		}
		task.Recurrence = recurrence
	}
	return task, nil
}
