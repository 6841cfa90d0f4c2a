// Package config loads and validates application configuration from
// environment variables. A .env file in the working directory is read
// first when present; variables already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth providers.
const (
	AuthJWT      = "jwt"
	AuthFirebase = "firebase"
)

// Logo stores.
const (
	LogoStoreDisk = "disk"
	LogoStoreS3   = "s3"
)

// Config holds all configuration values for the server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool

	// LogLevel is one of debug, info, warn, error. Defaults to "info".
	LogLevel string

	// CORSOrigins is the list of origins allowed to call the JSON API.
	// Set CORS_ORIGINS to a comma-separated list to override the Vite dev default.
	CORSOrigins []string

	// RedisURL enables the list cache when set.
	RedisURL string
	CacheTTL time.Duration

	// FeedRefresh is the cron spec for reloading the page snapshots.
	FeedRefresh string

	// AuthProvider selects how admin tokens are verified: "jwt" or "firebase".
	AuthProvider            string
	JWTSecret               string
	FirebaseCredentialsPath string

	// LogoStore is "disk" (LogoDir served under LogoBaseURL) or "s3".
	LogoStore   string
	LogoDir     string
	LogoBaseURL string
	S3Bucket    string
	S3Region    string

	MaxUploadBytes int64

	// AdminRateLimit is the sustained admin write rate per client, per second.
	AdminRateLimit float64
	AdminRateBurst int
}

// Load reads configuration from the environment. It returns one error naming
// every required variable that is missing and every value that does not parse.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: .env: %w", err)
	}

	var problems []string
	p := parser{problems: &problems}

	cfg := Config{
		Port:                    getEnv("PORT", "8080"),
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		MigrateOnStart:          p.bool("MIGRATE_ON_START", false),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RedisURL:                os.Getenv("REDIS_URL"),
		CacheTTL:                p.duration("CACHE_TTL", 5*time.Minute),
		FeedRefresh:             getEnv("FEED_REFRESH", "@every 5m"),
		AuthProvider:            strings.ToLower(getEnv("AUTH_PROVIDER", AuthJWT)),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),
		LogoStore:               strings.ToLower(getEnv("LOGO_STORE", LogoStoreDisk)),
		LogoDir:                 getEnv("LOGO_DIR", "./uploads"),
		LogoBaseURL:             getEnv("LOGO_BASE_URL", "/uploads"),
		S3Bucket:                os.Getenv("S3_BUCKET"),
		S3Region:                os.Getenv("S3_REGION"),
		MaxUploadBytes:          p.int64("MAX_UPLOAD_BYTES", 5<<20),
		AdminRateLimit:          p.float("ADMIN_RATE_LIMIT", 5),
		AdminRateBurst:          int(p.int64("ADMIN_RATE_BURST", 10)),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	switch cfg.AuthProvider {
	case AuthJWT:
		if cfg.JWTSecret == "" {
			missing = append(missing, "JWT_SECRET")
		}
	case AuthFirebase:
		if cfg.FirebaseCredentialsPath == "" {
			missing = append(missing, "FIREBASE_CREDENTIALS_PATH")
		}
	default:
		problems = append(problems, fmt.Sprintf("AUTH_PROVIDER must be %q or %q", AuthJWT, AuthFirebase))
	}

	switch cfg.LogoStore {
	case LogoStoreDisk:
	case LogoStoreS3:
		if cfg.S3Bucket == "" {
			missing = append(missing, "S3_BUCKET")
		}
	default:
		problems = append(problems, fmt.Sprintf("LOGO_STORE must be %q or %q", LogoStoreDisk, LogoStoreS3))
	}

	if len(missing) > 0 {
		problems = append([]string{"required environment variables not set: " + strings.Join(missing, ", ")}, problems...)
	}
	if len(problems) > 0 {
		return Config{}, errors.New(strings.Join(problems, "; "))
	}
	return cfg, nil
}

// parser reads typed optional values, recording the ones that do not parse.
type parser struct {
	problems *[]string
}

func (p parser) invalid(key, v string) {
	*p.problems = append(*p.problems, fmt.Sprintf("%s: invalid value %q", key, v))
}

func (p parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		p.invalid(key, v)
		return fallback
	}
	return d
}

func (p parser) int64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		p.invalid(key, v)
		return fallback
	}
	return n
}

func (p parser) float(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		p.invalid(key, v)
		return fallback
	}
	return f
}

func (p parser) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.invalid(key, v)
		return fallback
	}
	return b
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
