package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-rewards-api/internal/config"
	"github.com/yukikurage/task-rewards-api/internal/constants"
	"github.com/yukikurage/task-rewards-api/internal/database"
	"github.com/yukikurage/task-rewards-api/internal/models"
	"github.com/yukikurage/task-rewards-api/internal/repository"
	"github.com/yukikurage/task-rewards-api/internal/services"
	"github.com/yukikurage/task-rewards-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	db          *gorm.DB
	store       *repository.Store
	assets      *storage.LocalStorage
	authService *services.AuthService
	taskService *services.TaskService
	catalog     *services.CatalogService
	auth        *AuthHandler
	tasks       *TaskHandler
	cards       *CardHandler
	collection  *CollectionHandler
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.MigrateDatabase(db, zap.NewNop()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	assets, err := storage.NewLocalStorage(storage.LocalStorageConfig{
		BasePath: t.TempDir(),
		BaseURL:  "/assets",
	})
	require.NoError(t, err)

	log := zap.NewNop()
	store := repository.NewStore(db)
	authService := services.NewAuthService(store.Users)
	rewards := services.NewRewardService(store, log)
	taskService := services.NewTaskService(store, rewards, nil, log).
		WithClock(func() time.Time { return testNow })
	collectionService := services.NewCollectionService(store)
	catalog := services.NewCatalogService(store, assets, log)

	return &testEnv{
		db:          db,
		store:       store,
		assets:      assets,
		authService: authService,
		taskService: taskService,
		catalog:     catalog,
		auth:        NewAuthHandler(authService, log),
		tasks:       NewTaskHandler(taskService, assets, log),
		cards:       NewCardHandler(catalog, assets, log),
		collection:  NewCollectionHandler(collectionService, assets, log),
	}
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := env.authService.Signup(services.SignupInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	return user
}

func (env *testEnv) createCard(t *testing.T, name string) *models.Card {
	t.Helper()
	card := &models.Card{Name: name, ImageRef: name + ".png", Rarity: "rare", Era: "debut", Group: "solo"}
	require.NoError(t, env.store.Cards.Create(card))
	return card
}

func (env *testEnv) createTask(t *testing.T, userID uint64, name string, due time.Time) *models.Task {
	t.Helper()
	task, err := env.taskService.CreateTask(services.CreateTaskInput{
		UserID:   userID,
		Name:     name,
		Priority: models.PriorityMedium,
		DueDate:  due,
	})
	require.NoError(t, err)
	return task
}

// authContext builds a test context as if RequireAuth had run for userID.
func authContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != 0 {
		c.Set(constants.ContextKeyUserID, userID)
	}

	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return body
}

func uintString(v uint64) string {
	return strconv.FormatUint(v, 10)
}
