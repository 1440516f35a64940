package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-rewards-api/internal/models"
	"go.uber.org/zap"
)

func newFakeOpenAI(t *testing.T, content string) *AIService {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 0,
			"model":   openai.GPT4o,
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]string{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		})
	}))
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return NewAIServiceWithConfig(cfg)
}

func TestGenerateTasksFromText_StripsCodeFence(t *testing.T) {
	ai := newFakeOpenAI(t, "```json\n[{\"name\":\"Buy milk\",\"priority\":\"low\",\"due_date\":\"2024-03-14\"}]\n```")

	tasks, err := ai.GenerateTasksFromText(context.Background(), "buy milk tomorrow", time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Name)
	assert.Equal(t, models.PriorityLow, tasks[0].Priority)
	assert.Equal(t, "2024-03-14", tasks[0].DueDate)
}

func TestGenerateTasksFromText_InvalidJSON(t *testing.T) {
	ai := newFakeOpenAI(t, "I could not find any tasks.")

	_, err := ai.GenerateTasksFromText(context.Background(), "hello", time.Now())
	assert.ErrorContains(t, err, "failed to parse AI response")
}

func TestSuggestTasks_NormalizesOutput(t *testing.T) {
	ai := newFakeOpenAI(t, `[
		{"name":"Write report","priority":"high","due_date":"2024-03-15"},
		{"name":"Call bank","priority":"urgent","due_date":"2020-01-01"},
		{"name":"  ","priority":"low","due_date":""}
	]`)
	now := time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)
	svc := NewTaskService(nil, nil, ai, zap.NewNop()).WithClock(func() time.Time { return now })

	tasks, err := svc.SuggestTasks(context.Background(), "report friday, call the bank")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, GeneratedTask{Name: "Write report", Priority: models.PriorityHigh, DueDate: "2024-03-15"}, tasks[0])
	assert.Equal(t, GeneratedTask{Name: "Call bank", Priority: models.PriorityMedium}, tasks[1])
}

func TestSuggestTasks_Errors(t *testing.T) {
	svc := NewTaskService(nil, nil, nil, zap.NewNop())
	_, err := svc.SuggestTasks(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrAIServiceNotConfigured)

	svc = NewTaskService(nil, nil, newFakeOpenAI(t, "[]"), zap.NewNop())
	_, err = svc.SuggestTasks(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SuggestTasks(context.Background(), "nothing to do")
	assert.ErrorIs(t, err, ErrAINoTasksGenerated)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "[]", stripCodeFence("  []  "))
	assert.Equal(t, "[]", stripCodeFence("```json\n[]\n```"))
	assert.Equal(t, "[]", stripCodeFence("```\n[]\n```"))
}
