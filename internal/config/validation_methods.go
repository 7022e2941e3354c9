package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	redacted        = "[REDACTED]"
	maxUploadLimit  = int64(100 << 20)
	maxServerTimout = 5 * time.Minute
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	parts := make([]string, len(ve))
	for i := range ve {
		parts[i] = ve[i].Error()
	}
	return "configuration validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any error was collected
func (ve ValidationErrors) Has() bool {
	return len(ve) > 0
}

func (ve *ValidationErrors) add(field string, value interface{}, format string, args ...interface{}) {
	*ve = append(*ve, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks every section and returns all problems at once
func (c *Config) Validate() error {
	var ve ValidationErrors

	c.checkServer(&ve)
	c.checkAdmin(&ve)
	c.checkStore(&ve)
	c.checkDatabase(&ve)
	c.checkStorage(&ve)
	c.checkCache(&ve)
	c.checkGallery(&ve)
	if c.Logging != nil {
		c.checkLogging(&ve)
	}
	if c.Server != nil {
		c.checkTimeouts(&ve)
	}

	if ve.Has() {
		return ve
	}
	return nil
}

func (c *Config) checkServer(ve *ValidationErrors) {
	if c.Port == "" {
		ve.add("port", c.Port, "port cannot be empty")
	} else if port, err := strconv.Atoi(c.Port); err != nil {
		ve.add("port", c.Port, "port must be a valid integer")
	} else if port < 1 || port > 65535 {
		ve.add("port", c.Port, "port must be between 1 and 65535")
	}

	envs := []string{"development", "production", "test", "staging"}
	if c.Environment != "" && !slices.Contains(envs, c.Environment) {
		ve.add("environment", c.Environment, "environment must be one of: %s", strings.Join(envs, ", "))
	}

	if !isAbsoluteHTTP(c.PublicBaseURL) {
		ve.add("public_base_url", c.PublicBaseURL, "public base URL must be an absolute http(s) URL")
	}
}

func isAbsoluteHTTP(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// an empty secret rejects every login, tolerated outside production
func (c *Config) checkAdmin(ve *ValidationErrors) {
	if c.Environment == "production" && c.AdminPassword == "" {
		ve.add("admin_password", redacted, "admin password must be set for production environment")
	}
}

func (c *Config) checkStore(ve *ValidationErrors) {
	switch c.StoreDriver {
	case StoreDriverJSON:
		if c.DataFile == "" {
			ve.add("data_file", c.DataFile, "data file path cannot be empty for the json store")
		}
	case StoreDriverPostgres:
	default:
		ve.add("store_driver", c.StoreDriver, "store driver must be one of: json, postgres")
	}
}

func (c *Config) checkDatabase(ve *ValidationErrors) {
	if c.DatabaseURL == "" {
		if c.StoreDriver == StoreDriverPostgres {
			ve.add("database_url", c.DatabaseURL, "database URL is required for the postgres store")
		}
		return
	}

	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		ve.add("database_url", c.DatabaseURL, "database URL must be a valid URL")
		return
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		ve.add("database_url", u.Scheme, "database URL must use postgres or postgresql scheme")
	}
	if u.Host == "" {
		ve.add("database_url", c.DatabaseURL, "database URL must include host")
	}
	if strings.Trim(u.Path, "/") == "" {
		ve.add("database_url", c.DatabaseURL, "database URL must include database name")
	}
}

func (c *Config) checkStorage(ve *ValidationErrors) {
	s := c.Storage
	if s.MaxUploadSize > maxUploadLimit {
		ve.add("storage.max_upload_size", s.MaxUploadSize, "max upload size cannot exceed %d bytes (100MB)", maxUploadLimit)
	}

	switch s.Driver {
	case StorageDriverLocal:
		if s.UploadsDir == "" {
			ve.add("storage.uploads_dir", s.UploadsDir, "uploads directory cannot be empty for local storage")
		}
		return
	case StorageDriverMinIO:
	default:
		ve.add("storage.driver", s.Driver, "storage driver must be one of: local, minio")
		return
	}

	if s.Endpoint == "" {
		ve.add("storage.endpoint", s.Endpoint, "storage endpoint cannot be empty")
	}
	switch {
	case s.BucketName == "":
		ve.add("storage.bucket_name", s.BucketName, "storage bucket name cannot be empty")
	case !isValidBucketName(s.BucketName):
		ve.add("storage.bucket_name", s.BucketName, "storage bucket name must be 3-63 characters, lowercase alphanumeric and hyphens only")
	}

	// the MinIO defaults are fine for local runs only
	if c.Environment != "production" {
		return
	}
	if s.AccessKeyID == "" || s.AccessKeyID == "minioadmin" {
		ve.add("storage.access_key_id", s.AccessKeyID, "storage access key ID must be set for production environment")
	}
	if s.SecretAccessKey == "" || s.SecretAccessKey == "minioadmin" {
		ve.add("storage.secret_access_key", redacted, "storage secret access key must be set for production environment")
	}
}

func (c *Config) checkCache(ve *ValidationErrors) {
	if !c.Cache.Enabled {
		return
	}
	if c.Cache.Address == "" {
		ve.add("cache.address", c.Cache.Address, "cache address cannot be empty when cache is enabled")
	}
	if c.Cache.DefaultTTL <= 0 {
		ve.add("cache.default_ttl", c.Cache.DefaultTTL, "cache TTL must be greater than 0")
	}
}

func (c *Config) checkGallery(ve *ValidationErrors) {
	if c.Gallery.PageSize < 1 || c.Gallery.PageSize > 100 {
		ve.add("gallery.page_size", c.Gallery.PageSize, "page size must be between 1 and 100")
	}
	if c.Gallery.Ceiling < 1 {
		ve.add("gallery.ceiling", c.Gallery.Ceiling, "gallery ceiling must be at least 1")
	}
}

func (c *Config) checkLogging(ve *ValidationErrors) {
	levels := []string{"debug", "info", "warn", "error"}
	if !containsFold(levels, c.Logging.Level) {
		ve.add("logging.level", c.Logging.Level, "logging level must be one of: %s", strings.Join(levels, ", "))
	}
	formats := []string{"json", "text", "console"}
	if !containsFold(formats, c.Logging.Format) {
		ve.add("logging.format", c.Logging.Format, "logging format must be one of: %s", strings.Join(formats, ", "))
	}
}

func containsFold(options []string, v string) bool {
	return slices.ContainsFunc(options, func(o string) bool { return strings.EqualFold(o, v) })
}

func (c *Config) checkTimeouts(ve *ValidationErrors) {
	bounded := []struct {
		field string
		name  string
		value time.Duration
	}{
		{"server.read_timeout", "read", c.Server.ReadTimeout},
		{"server.write_timeout", "write", c.Server.WriteTimeout},
	}
	for _, b := range bounded {
		switch {
		case b.value <= 0:
			ve.add(b.field, b.value, "%s timeout must be greater than 0", b.name)
		case b.value > maxServerTimout:
			ve.add(b.field, b.value, "%s timeout should not exceed 5 minutes", b.name)
		}
	}
	if c.Server.IdleTimeout <= 0 {
		ve.add("server.idle_timeout", c.Server.IdleTimeout, "idle timeout must be greater than 0")
	}
}

// isValidBucketName applies the S3 bucket naming rules
func isValidBucketName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}
	if !isLowerAlphaNum(name[0]) || !isLowerAlphaNum(name[len(name)-1]) {
		return false
	}
	if strings.Contains(name, "--") {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isLowerAlphaNum(name[i]) && name[i] != '-' {
			return false
		}
	}
	return true
}

func isLowerAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// MustValidate validates the configuration and panics on error
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("configuration validation failed: %v", err))
	}
}
