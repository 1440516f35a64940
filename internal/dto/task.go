package dto

import (
	"time"

	"github.com/yukikurage/task-rewards-api/internal/models"
	"github.com/yukikurage/task-rewards-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID         uint64              `json:"id"`
	Name       string              `json:"name"`
	Priority   models.TaskPriority `json:"priority"`
	DueDate    string              `json:"due_date"`
	WeekNumber int                 `json:"week_number"`
	WeekYear   int                 `json:"week_year"`
	Completed  bool                `json:"completed"`
	UserID     uint64              `json:"user_id"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	User       *UserDTO            `json:"user,omitempty"`
}

// TaskListResponse represents a list of tasks with pagination metadata
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:         task.ID,
		Name:       task.Name,
		Priority:   task.Priority,
		DueDate:    task.DueDate.UTC().Format(utils.DateLayout),
		WeekNumber: task.WeekNumber,
		WeekYear:   task.WeekYear,
		Completed:  task.Completed,
		UserID:     task.UserID,
		CreatedAt:  task.CreatedAt,
		UpdatedAt:  task.UpdatedAt,
	}

	// Include owner if preloaded, without the email
	if task.User != nil {
		dto.User = &UserDTO{ID: task.User.ID, Username: task.User.Username}
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
