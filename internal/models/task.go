package models

import "time"

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// Task is owned by exactly one user. WeekNumber and WeekYear are the ISO week
// of DueDate, fixed when the task is created.
type Task struct {
	ID         uint64       `gorm:"primarykey" json:"id"`
	Name       string       `gorm:"type:varchar(128);not null" json:"name"`
	Priority   TaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	DueDate    time.Time    `gorm:"type:date;not null;index:idx_tasks_due_date" json:"due_date"`
	WeekNumber int          `gorm:"not null;index:idx_tasks_week" json:"week_number"`
	WeekYear   int          `gorm:"not null;index:idx_tasks_week" json:"week_year"`
	Completed  bool         `gorm:"not null;default:false" json:"completed"`
	UserID     uint64       `gorm:"not null;index:idx_tasks_user_id" json:"user_id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
