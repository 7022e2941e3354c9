// Package config loads the gallery configuration from environment variables
// and validates it before the server starts.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers
const (
	StoreDriverJSON     = "json"
	StoreDriverPostgres = "postgres"
)

// Upload storage drivers
const (
	StorageDriverLocal = "local"
	StorageDriverMinIO = "minio"
)

// Config represents the application configuration
type Config struct {
	Environment   string
	Port          string
	Host          string
	PublicBaseURL string
	AdminPassword string
	DataFile      string
	StoreDriver   string
	DatabaseURL   string
	Storage       StorageConfig
	Cache         CacheConfig
	Gallery       GalleryConfig
	Profile       ProfileConfig
	Logging       *LoggingConfig
	Server        *ServerConfig

	// CORSAllowedOrigins lists browser origins allowed to call the API.
	// Empty or "*" allows any origin.
	CORSAllowedOrigins []string
}

// StorageConfig holds upload storage configuration
type StorageConfig struct {
	Driver          string
	UploadsDir      string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	Region          string
	MaxUploadSize   int64
}

// CacheConfig holds Redis/Valkey configuration for the photo list cache
type CacheConfig struct {
	Enabled         bool
	Address         string
	Password        string
	Database        int
	DefaultTTL      time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PoolSize        int
	MinIdleConns    int
	PoolTimeout     time.Duration
}

// GalleryConfig holds pagination settings
type GalleryConfig struct {
	PageSize int
	Ceiling  int
}

// ProfileConfig describes the photographer shown on the gallery page
type ProfileConfig struct {
	Name      string
	Bio       string
	Image     string
	Instagram string
	Website   string
	Twitter   string
	Email     string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
	Output string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load creates a new configuration from environment variables with validation
func Load() (*Config, error) {
	useSSL, _ := strconv.ParseBool(getEnv("STORAGE_USE_SSL", "false"))
	maxUploadSize := parseSize(getEnv("MAX_UPLOAD_SIZE", "10MB"))

	readTimeout, _ := time.ParseDuration(getEnv("READ_TIMEOUT", "15s"))
	writeTimeout, _ := time.ParseDuration(getEnv("WRITE_TIMEOUT", "15s"))
	idleTimeout, _ := time.ParseDuration(getEnv("SERVER_TIMEOUT", "60s"))

	cacheEnabled, _ := strconv.ParseBool(getEnv("CACHE_ENABLED", "false"))
	cacheDB, _ := strconv.Atoi(getEnv("CACHE_DATABASE", "0"))
	cacheTTL, _ := time.ParseDuration(getEnv("CACHE_DEFAULT_TTL", "5m"))
	cachePoolSize, _ := strconv.Atoi(getEnv("CACHE_POOL_SIZE", "10"))

	pageSize, _ := strconv.Atoi(getEnv("GALLERY_PAGE_SIZE", "8"))
	ceiling, _ := strconv.Atoi(getEnv("GALLERY_CEILING", "100"))

	port := getEnv("PORT", "4000")

	config := &Config{
		Environment:   getEnv("GO_ENV", "development"),
		Port:          port,
		Host:          getEnv("HOST", "localhost"),
		PublicBaseURL: strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		DataFile:      getEnv("DATA_FILE", "data/db.json"),
		StoreDriver:   getEnv("STORE_DRIVER", StoreDriverJSON),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Storage: StorageConfig{
			Driver:          getEnv("STORAGE_DRIVER", StorageDriverLocal),
			UploadsDir:      getEnv("UPLOADS_DIR", "public/uploads"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "photos"),
			UseSSL:          useSSL,
			Region:          getEnv("STORAGE_REGION", "us-east-1"),
			MaxUploadSize:   maxUploadSize,
		},
		Cache: CacheConfig{
			Enabled:         cacheEnabled,
			Address:         getEnv("CACHE_ADDRESS", "localhost:6379"),
			Password:        getEnv("CACHE_PASSWORD", ""),
			Database:        cacheDB,
			DefaultTTL:      cacheTTL,
			MaxRetries:      3,
			MinRetryBackoff: 8 * time.Millisecond,
			MaxRetryBackoff: 512 * time.Millisecond,
			DialTimeout:     5 * time.Second,
			ReadTimeout:     3 * time.Second,
			WriteTimeout:    3 * time.Second,
			PoolSize:        cachePoolSize,
			MinIdleConns:    1,
			PoolTimeout:     4 * time.Second,
		},
		Gallery: GalleryConfig{
			PageSize: pageSize,
			Ceiling:  ceiling,
		},
		Profile: ProfileConfig{
			Name:      getEnv("PROFILE_NAME", "Photographer"),
			Bio:       getEnv("PROFILE_BIO", "Capturing the quiet moments of nature and everyday life."),
			Image:     getEnv("PROFILE_IMAGE", "/avatar.svg"),
			Instagram: getEnv("PROFILE_INSTAGRAM", ""),
			Website:   getEnv("PROFILE_WEBSITE", ""),
			Twitter:   getEnv("PROFILE_TWITTER", ""),
			Email:     getEnv("PROFILE_EMAIL", ""),
		},
		Logging: &LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
		Server: &ServerConfig{
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	// Validate configuration before returning
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma separated value, dropping blank entries
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseSize parses size strings like "10MB", "512KB" into bytes
func parseSize(sizeStr string) int64 {
	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))

	if strings.HasSuffix(sizeStr, "MB") {
		numStr := strings.TrimSuffix(sizeStr, "MB")
		if num, err := strconv.ParseInt(numStr, 10, 64); err == nil {
			return num * 1024 * 1024
		}
	}

	if strings.HasSuffix(sizeStr, "KB") {
		numStr := strings.TrimSuffix(sizeStr, "KB")
		if num, err := strconv.ParseInt(numStr, 10, 64); err == nil {
			return num * 1024
		}
	}

	// Default to 10MB if parsing fails
	return 10 * 1024 * 1024
}

// MustLoad loads configuration and panics on error
func MustLoad() *Config {
	config, err := Load()
	if err != nil {
		panic(err)
	}
	return config
}
