// Package config provides centralized default values for InkVite
package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

// loadEnvFile loads environment variables from .env file
func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			// .env file is optional, don't error if it doesn't exist
			return
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func init() {
	loadEnvFile()
}

// getEnvInt reads environment variable with fallback to default
func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvString reads environment variable with string fallback
func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// Server Configuration
var (
	Port = getEnvString("PORT", "8080")

	ServerReadTimeout  = time.Duration(getEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second
	ServerWriteTimeout = time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 30)) * time.Second
	ServerIdleTimeout  = time.Duration(getEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)) * time.Second
)

// Database Configuration
var (
	DBDriver = getEnvString("DB_DRIVER", "sqlite3")
	DBPath   = getEnvString("DB_PATH", "inkvite.db")
	// LibsqlURL selects the libsql driver when set (Turso deployments).
	LibsqlURL = getEnvString("LIBSQL_URL", "")

	SlowQueryThreshold = time.Duration(getEnvInt("SLOW_QUERY_THRESHOLD_MS", 50)) * time.Millisecond
)

// Cache Configuration
var (
	ContentCacheTTL      = time.Duration(getEnvInt("CONTENT_CACHE_TTL_HOURS", 24)) * time.Hour
	RenderCacheTTL       = time.Duration(getEnvInt("RENDER_CACHE_TTL_MINUTES", 60)) * time.Minute
	CacheCleanupInterval = time.Duration(getEnvInt("CACHE_CLEANUP_INTERVAL_MINUTES", 30)) * time.Minute
)

// Auth Configuration
var (
	JWTSecret     = getEnvString("JWT_SECRET", "")
	AdminPassword = getEnvString("ADMIN_PASSWORD", "")
	TokenTTL      = time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour
)

// Media Configuration
var (
	MediaBasePath = getEnvString("MEDIA_BASE_PATH", "media")
	// MaxBackgroundWidth caps uploaded background images to the canvas scale.
	MaxBackgroundWidth = getEnvInt("MAX_BACKGROUND_WIDTH", 1600)
	ThumbnailWidth     = getEnvInt("THUMBNAIL_WIDTH", 320)
)

// Email Configuration
var (
	ResendAPIKey  = getEnvString("RESEND_API_KEY", "")
	EmailFrom     = getEnvString("EMAIL_FROM", "noreply@inkvite.app")
	EmailFromName = getEnvString("EMAIL_FROM_NAME", "InkVite")
	PublicBaseURL = getEnvString("PUBLIC_BASE_URL", "http://localhost:3000")
)
