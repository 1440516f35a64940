package constants

// Session and context keys
const (
	SessionCookieName  = "task_session"
	SessionKeyUserID   = "user_id"
	SessionKeyUsername = "username"

	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyTask     = "task"
)

// Validation limits
const (
	MaxAIGeneratedTasks = 20
	MaxImageUploadBytes = 10 << 20
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Task list scopes
const (
	TaskScopeAll   = "all"
	TaskScopeToday = "today"
	TaskScopeWeek  = "week"
)
