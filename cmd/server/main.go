package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/task-rewards-api/internal/config"
	"github.com/yukikurage/task-rewards-api/internal/constants"
	"github.com/yukikurage/task-rewards-api/internal/database"
	"github.com/yukikurage/task-rewards-api/internal/handlers"
	"github.com/yukikurage/task-rewards-api/internal/logger"
	"github.com/yukikurage/task-rewards-api/internal/metrics"
	"github.com/yukikurage/task-rewards-api/internal/middleware"
	"github.com/yukikurage/task-rewards-api/internal/repository"
	"github.com/yukikurage/task-rewards-api/internal/services"
	"github.com/yukikurage/task-rewards-api/internal/storage"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.Log)
	defer log.Sync()
	metrics.Register()

	log.Info("starting_application", zap.String("db_driver", cfg.Database.Driver))

	// Set Gin mode
	gin.SetMode(cfg.App.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		log.Fatal("database_connect_failed", zap.Error(err))
	}

	// Run migrations
	if err := database.MigrateDatabase(db, log); err != nil {
		log.Fatal("migration_failed", zap.Error(err))
	}

	assets, err := storage.New(cfg.Storage, log)
	if err != nil {
		log.Fatal("storage_init_failed", zap.Error(err))
	}

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal("session_store_failed", zap.Error(err))
	}

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	store := repository.NewStore(db)
	authService := services.NewAuthService(store.Users)
	rewardService := services.NewRewardService(store, log)
	taskService := services.NewTaskService(store, rewardService, aiService, log)
	collectionService := services.NewCollectionService(store)
	catalogService := services.NewCatalogService(store, assets, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	taskHandler := handlers.NewTaskHandler(taskService, assets, log)
	collectionHandler := handlers.NewCollectionHandler(collectionService, assets, log)
	cardHandler := handlers.NewCardHandler(catalogService, assets, log)

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))
	r.MaxMultipartMemory = constants.MaxImageUploadBytes

	if local, ok := assets.(*storage.LocalStorage); ok {
		r.Static(cfg.Storage.PublicURL, local.BasePath())
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Rewards API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/suggest", taskHandler.SuggestTasks)
			tasks.GET("/:id", middleware.RequireTaskAccess(taskService), taskHandler.GetTask)
			tasks.POST("/:id/complete", middleware.RequireTaskAccess(taskService), taskHandler.CompleteTask)
		}

		api.GET("/collection", middleware.RequireAuth(), collectionHandler.GetCollection)

		// Card catalog routes (protected)
		cards := api.Group("/cards")
		cards.Use(middleware.RequireAuth())
		{
			cards.GET("", cardHandler.ListCards)
			cards.POST("", cardHandler.AddCard)
			cards.DELETE("/:id", cardHandler.DeleteCard)
		}
	}

	startServer(r, cfg.App.Port, log)
}

// newSessionStore returns the Redis store, or a signed cookie store when
// SESSION_STORE=cookie.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.Session.Store {
	case "cookie":
		store = cookie.NewStore([]byte(cfg.Session.Secret))
	case "redis", "":
		redisAddr := cfg.Session.RedisHost + ":" + cfg.Session.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.Session.Secret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	default:
		return nil, errors.New("unsupported session store " + cfg.Session.Store)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsRelease(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func startServer(router *gin.Engine, port string, log *zap.Logger) {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("starting_http_server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http_server_failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting_down_server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server_forced_shutdown", zap.Error(err))
	}

	log.Info("server_stopped")
}
