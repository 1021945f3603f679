package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"loremaker-codex-be/internal/constant"
)

type Config struct {
	App   AppConfig
	Sheet SheetConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type SheetConfig struct {
	// ID is the spreadsheet identifier. An empty ID fails every load
	// with a MissingConfig error; the public message stays generic.
	ID       string
	Tab      string
	CacheTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "codex.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Sheet: SheetConfig{
			ID:       getEnv("SHEET_ID", ""),
			Tab:      getEnv("SHEET_TAB", ""),
			CacheTTL: getEnvAsMillis("CACHE_TTL", constant.DefaultCacheTTL),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsMillis reads an integer millisecond value.
func getEnvAsMillis(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if ms, err := strconv.Atoi(strValue); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
