package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything read from the environment. Loaded once at process
// start and passed down explicitly; nothing else reads os.Getenv.
type Config struct {
	ServerPort string
	AppEnv     string
	LogLevel   string

	DatabaseDSN string

	JWTSecret    string
	JWTExpiry    time.Duration
	CookieExpiry time.Duration

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RateLimitMax    int
	RateLimitWindow time.Duration

	UploadDir     string
	UploadBaseURL string

	GeminiAPIKey string

	CORSAllowedOrigin string

	// AllowDuplicateApplications lets a seeker apply to the same job more
	// than once. Off by default.
	AllowDuplicateApplications bool
}

// Load reads the .env file if present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // env vars alone are fine

	cfg := &Config{
		ServerPort:                 getEnv("SERVER_PORT", "8080"),
		AppEnv:                     getEnv("APP_ENV", "development"),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
		DatabaseDSN:                os.Getenv("DATABASE_DSN"),
		JWTSecret:                  os.Getenv("JWT_SECRET"),
		JWTExpiry:                  time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		CookieExpiry:               time.Duration(getEnvInt("COOKIE_EXPIRE_DAYS", 7)) * 24 * time.Hour,
		RedisAddr:                  os.Getenv("REDIS_ADDR"),
		RedisPassword:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                    getEnvInt("REDIS_DB", 0),
		RateLimitMax:               getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow:            time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 1)) * time.Second,
		UploadDir:                  getEnv("UPLOAD_DIR", "./uploads"),
		UploadBaseURL:              getEnv("UPLOAD_BASE_URL", "/uploads"),
		GeminiAPIKey:               os.Getenv("GEMINI_API_KEY"),
		CORSAllowedOrigin:          getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
		AllowDuplicateApplications: getEnvBool("ALLOW_DUPLICATE_APPLICATIONS", false),
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("environment variable DATABASE_DSN must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL %q, using 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with production settings
// (gin release mode, JSON logs).
func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
