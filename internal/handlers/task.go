package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-rewards-api/internal/dto"
	apierrors "github.com/yukikurage/task-rewards-api/internal/errors"
	"github.com/yukikurage/task-rewards-api/internal/middleware"
	"github.com/yukikurage/task-rewards-api/internal/models"
	"github.com/yukikurage/task-rewards-api/internal/services"
	"github.com/yukikurage/task-rewards-api/internal/storage"
	"github.com/yukikurage/task-rewards-api/internal/utils"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService *services.TaskService
	assets      storage.Storage
	log         *zap.Logger
}

func NewTaskHandler(taskService *services.TaskService, assets storage.Storage, log *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		assets:      assets,
		log:         log,
	}
}

// ListTasks returns the current user's tasks.
// Filters: scope=all|today|week, due_date=YYYY-MM-DD, week=N with optional year=Y.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input := services.ListTasksInput{
		UserID: userID,
		Scope:  c.DefaultQuery("scope", "all"),
	}

	if value := c.Query("due_date"); value != "" {
		dueDate, err := utils.ParseDate(value)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_date, expected YYYY-MM-DD")
			return
		}
		input.DueDate = &dueDate
	}

	if value := c.Query("week"); value != "" {
		week, err := strconv.Atoi(value)
		if err != nil {
			apierrors.BadRequest(c, "Invalid week")
			return
		}
		input.WeekNumber = &week
	}

	if value := c.Query("year"); value != "" {
		year, err := strconv.Atoi(value)
		if err != nil {
			apierrors.BadRequest(c, "Invalid year")
			return
		}
		input.WeekYear = &year
	}

	// Get pagination parameters
	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.Limit

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		respondServiceError(c, h.log, "list_tasks", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a specific task by ID
// Task is already loaded with its owner by RequireTaskAccess middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task for the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Name     string `json:"name"`
		Priority string `json:"priority"`
		DueDate  string `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTaskInput{
		UserID:   userID,
		Name:     req.Name,
		Priority: models.TaskPriority(req.Priority),
	}
	if req.DueDate != "" {
		dueDate, err := utils.ParseDate(req.DueDate)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid input", map[string]string{
				"due_date": "must be a date in YYYY-MM-DD format",
			})
			return
		}
		input.DueDate = dueDate
	}

	task, err := h.taskService.CreateTask(input)
	if err != nil {
		respondServiceError(c, h.log, "create_task", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// CompleteTask marks the task completed and returns the card drawn for it
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	result, err := h.taskService.CompleteTask(task.ID)
	if err != nil {
		respondServiceError(c, h.log, "complete_task", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompletionResponse(result, h.assets.URL))
}

// SuggestTasks extracts task suggestions from free text using AI. Nothing is stored.
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	type SuggestTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	suggestions, err := h.taskService.SuggestTasks(c.Request.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAINoTasksGenerated),
			errors.Is(err, services.ErrAINoValidTasks):
			c.JSON(http.StatusOK, gin.H{"tasks": []services.GeneratedTask{}})
		default:
			respondServiceError(c, h.log, "suggest_tasks", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": suggestions})
}
