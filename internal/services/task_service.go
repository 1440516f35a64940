package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/task-rewards-api/internal/constants"
	"github.com/yukikurage/task-rewards-api/internal/metrics"
	"github.com/yukikurage/task-rewards-api/internal/models"
	"github.com/yukikurage/task-rewards-api/internal/repository"
	"github.com/yukikurage/task-rewards-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// TaskService handles task business logic
type TaskService struct {
	store     *repository.Store
	rewards   *RewardService
	aiService *AIService
	now       func() time.Time
	log       *zap.Logger
}

// NewTaskService creates a new TaskService. aiService may be nil.
func NewTaskService(store *repository.Store, rewards *RewardService, aiService *AIService, log *zap.Logger) *TaskService {
	return &TaskService{
		store:     store,
		rewards:   rewards,
		aiService: aiService,
		now:       time.Now,
		log:       log,
	}
}

// WithClock replaces the clock used for the today and week scopes.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID   uint64              `validate:"required"`
	Name     string              `validate:"required,max=128"`
	Priority models.TaskPriority `validate:"required,oneof=high medium low"`
	DueDate  time.Time
}

// ListTasksInput represents filters for listing a user's tasks. Scope is one
// of all, today or week; DueDate and WeekNumber/WeekYear filter explicitly.
type ListTasksInput struct {
	UserID     uint64
	Scope      string
	DueDate    *time.Time
	WeekNumber *int
	WeekYear   *int
	Page       int
	PageSize   int
}

// CompletionResult is a completed task, owner loaded, with the card it earned.
type CompletionResult struct {
	Task   *models.Task
	Reward *RewardResult
}

// CreateTask validates the input and stores a task. The ISO week of the due
// date is computed here once and never recomputed.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	input.Name = strings.TrimSpace(input.Name)

	verr := validateStruct(input)
	if input.DueDate.IsZero() {
		if verr == nil {
			verr = &ValidationError{}
		}
		verr.add("due_date", "is required")
	}
	if verr != nil {
		return nil, verr
	}

	if _, err := s.store.Users.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("user_id", "user does not exist")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	dueDate := utils.DateOnly(input.DueDate)
	year, week := utils.ISOWeek(dueDate)

	task := &models.Task{
		Name:       input.Name,
		Priority:   input.Priority,
		DueDate:    dueDate,
		WeekNumber: week,
		WeekYear:   year,
		UserID:     input.UserID,
	}

	if err := s.store.Tasks.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks returns the user's tasks matching the input, incomplete first
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		UserID:   &input.UserID,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	today := utils.DateOnly(s.now())
	switch input.Scope {
	case "", constants.TaskScopeAll:
	case constants.TaskScopeToday:
		filter.DueDateFrom, filter.DueDateTo = dayRange(today)
	case constants.TaskScopeWeek:
		year, week := utils.ISOWeek(today)
		filter.WeekNumber = &week
		filter.WeekYear = &year
	default:
		return nil, 0, newValidationError("scope", "must be one of: all today week")
	}

	if input.DueDate != nil {
		filter.DueDateFrom, filter.DueDateTo = dayRange(utils.DateOnly(*input.DueDate))
	}
	if input.WeekNumber != nil {
		if *input.WeekNumber < 1 || *input.WeekNumber > 53 {
			return nil, 0, newValidationError("week", "must be between 1 and 53")
		}
		filter.WeekNumber = input.WeekNumber
		filter.WeekYear = input.WeekYear
	}

	tasks, total, err := s.store.Tasks.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with its owner loaded
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.store.Tasks.FindByID(taskID, "User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CompleteTask marks a task completed and draws a reward card for its owner in
// one transaction. Completing an already completed task draws again. When the
// draw fails nothing is persisted.
func (s *TaskService) CompleteTask(taskID uint64) (*CompletionResult, error) {
	var result *CompletionResult
	err := s.store.Transaction(func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByID(taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		if err := tx.Tasks.MarkCompleted(task.ID); err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		reward, err := s.rewards.draw(tx, task.UserID)
		if err != nil {
			return err
		}

		task, err = tx.Tasks.FindByID(task.ID, "User")
		if err != nil {
			return fmt.Errorf("failed to reload task: %w", err)
		}

		result = &CompletionResult{Task: task, Reward: reward}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TasksCompleted.Inc()
	s.log.Info("task_completed",
		zap.Uint64("task_id", result.Task.ID),
		zap.Uint64("user_id", result.Task.UserID),
	)
	s.rewards.record(result.Task.UserID, result.Reward)

	return result, nil
}

// SuggestTasks uses AI to extract task suggestions from free text. Nothing is stored.
func (s *TaskService) SuggestTasks(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, newValidationError("text", "is required")
	}

	aiTasks, err := s.aiService.GenerateTasksFromText(ctx, text, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	today := utils.DateOnly(s.now())
	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	for _, aiTask := range aiTasks {
		aiTask.Name = strings.TrimSpace(aiTask.Name)
		if aiTask.Name == "" {
			continue
		}

		switch aiTask.Priority {
		case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		default:
			aiTask.Priority = models.PriorityMedium
		}

		if aiTask.DueDate != "" {
			due, err := utils.ParseDate(aiTask.DueDate)
			if err != nil || due.Before(today) {
				aiTask.DueDate = ""
			}
		}

		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}

func dayRange(day time.Time) (*time.Time, *time.Time) {
	next := day.Add(24 * time.Hour)
	return &day, &next
}
