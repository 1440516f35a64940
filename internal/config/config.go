package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Session      SessionConfig
	Storage      StorageConfig
	Log          LogConfig
	OpenAIAPIKey string
}

type AppConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig selects the GORM driver. Driver is one of mysql, postgres or sqlite.
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

type SessionConfig struct {
	Store     string // redis or cookie
	Secret    string
	RedisHost string
	RedisPort string
}

// StorageConfig configures where card images are kept. Driver is local or s3.
type StorageConfig struct {
	Driver      string
	LocalDir    string
	PublicURL   string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool
	S3Region    string
}

type LogConfig struct {
	Level      string
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "mysql")),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "3306"),
			User:       getEnv("DB_USER", "taskuser"),
			Password:   getEnv("DB_PASSWORD", "taskpassword"),
			Name:       getEnv("DB_NAME", "task_rewards"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "users.db"),
		},
		Session: SessionConfig{
			Store:     strings.ToLower(getEnv("SESSION_STORE", "redis")),
			Secret:    getEnv("SESSION_SECRET", "default-secret-key-change-me"),
			RedisHost: getEnv("REDIS_HOST", "localhost"),
			RedisPort: getEnv("REDIS_PORT", "6379"),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			LocalDir:    getEnv("STORAGE_LOCAL_DIR", "./static/images"),
			PublicURL:   getEnv("STORAGE_PUBLIC_URL", "/assets"),
			S3Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
			S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey: getEnv("S3_SECRET_KEY", ""),
			S3Bucket:    getEnv("S3_BUCKET", "cards"),
			S3UseSSL:    getEnvBool("S3_USE_SSL", false),
			S3Region:    getEnv("S3_REGION", "us-east-1"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			FilePath:   getEnv("LOG_FILE", "./logs/app.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 50),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 7),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 14),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
	}
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.App.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
