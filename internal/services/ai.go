package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/task-rewards-api/internal/models"
	"github.com/yukikurage/task-rewards-api/internal/utils"
)

type AIService struct {
	client *openai.Client
}

// GeneratedTask is a task suggestion. DueDate is YYYY-MM-DD or empty.
type GeneratedTask struct {
	Name     string              `json:"name"`
	Priority models.TaskPriority `json:"priority"`
	DueDate  string              `json:"due_date"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithConfig builds the client from an explicit config, e.g. a custom BaseURL.
func NewAIServiceWithConfig(cfg openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
	}
}

// GenerateTasksFromText analyzes text and extracts tasks using OpenAI GPT
func (s *AIService) GenerateTasksFromText(ctx context.Context, text string, now time.Time) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	today := now.UTC().Format(utils.DateLayout)
	prompt := fmt.Sprintf(`You are a task extraction assistant. Extract concrete tasks from the text below.

Today: %s

Text:
%s

Return a JSON array of the extracted tasks in this format:
[
  {
    "name": "short task name (at most 128 characters)",
    "priority": "high, medium or low",
    "due_date": "due date as YYYY-MM-DD, or an empty string when none is given"
  }
]

Rules:
- Return an empty array [] when there are no tasks
- Convert relative expressions such as "tomorrow" or "next week" into concrete dates
- Return JSON only, without any explanation`, today, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block if the model added one.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimPrefix(content, "json")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
