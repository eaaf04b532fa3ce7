// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Media backend variants. The choice is fixed at process startup, not per request.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Config holds all runtime configuration for the service.
type Config struct {
	DatabaseURL string
	Port        string
	AppEnv      string

	// MediaBackend selects where uploaded bytes live: "local" writes them
	// under PublicDir, "remote" streams them to an S3-compatible media host.
	MediaBackend string
	PublicDir    string
	SiteBaseURL  string
	MaxUploadMB  int64

	// Object storage (S3-compatible: MinIO locally, any S3 host in production).
	// Credentials are only required when MediaBackend is "remote".
	StorageEndpoint   string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageBucket     string
	StorageFolder     string
	StorageUseSSL     bool
	StoragePublicBase string // browser-accessible base URL, e.g. "http://localhost:9000/media"

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

// Load reads configuration from a .env file (if present) and environment
// variables. The process exits when DATABASE_URL is absent.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	return &Config{
		DatabaseURL: databaseURL,
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),

		MediaBackend: getEnv("MEDIA_BACKEND", BackendLocal),
		PublicDir:    getEnv("PUBLIC_DIR", "public"),
		SiteBaseURL:  getEnv("SITE_BASE_URL", "http://localhost:8080"),
		MaxUploadMB:  getEnvInt64("MAX_UPLOAD_MB", 100),

		StorageEndpoint:   getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:  os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey:  os.Getenv("STORAGE_SECRET_KEY"),
		StorageBucket:     getEnv("STORAGE_BUCKET", "media"),
		StorageFolder:     getEnv("STORAGE_FOLDER", "media-blog"),
		StorageUseSSL:     getEnv("STORAGE_USE_SSL", "false") == "true",
		StoragePublicBase: getEnv("STORAGE_PUBLIC_BASE", "http://localhost:9000/media"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPath:       os.Getenv("LOG_PATH"),
		LogMaxSizeMB:  int(getEnvInt64("LOG_MAX_SIZE_MB", 100)),
		LogMaxBackups: int(getEnvInt64("LOG_MAX_BACKUPS", 3)),
		LogMaxAgeDays: int(getEnvInt64("LOG_MAX_AGE_DAYS", 7)),
		LogCompress:   getEnv("LOG_COMPRESS", "false") == "true",
	}
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
