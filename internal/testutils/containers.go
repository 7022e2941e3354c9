// Package testutils starts throwaway Postgres, MinIO and Valkey instances and
// provides HTTP helpers for integration tests.
package testutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/minio"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	redisModule "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"photo-gallery/internal/config"
	"photo-gallery/internal/observability"
	"photo-gallery/internal/platform/cache"
	"photo-gallery/internal/platform/database"
	"photo-gallery/internal/platform/storage"
)

const (
	testBucket = "test-photos"
	minioUser  = "testuser"
	minioPass  = "testpass123"
)

// TestContainers manages test containers for integration testing
type TestContainers struct {
	PostgresContainer testcontainers.Container
	MinioContainer    testcontainers.Container
	RedisContainer    testcontainers.Container
	DB                *sql.DB
	MinIOStore        *storage.MinIOStore
	RedisClient       *cache.RedisClient
	DatabaseURL       string
	MinioEndpoint     string
	RedisAddress      string
}

// SetupTestContainers starts Postgres, MinIO and Valkey, then migrates the
// schema. A failed step tears down whatever already started.
func SetupTestContainers(ctx context.Context) (*TestContainers, error) {
	tc := &TestContainers{}

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"postgres", tc.setupPostgres},
		{"minio", tc.setupMinio},
		{"valkey", tc.setupRedis},
		{"migrations", func(ctx context.Context) error {
			return database.RunMigrations(ctx, tc.DB, observability.NewNopLogger())
		}},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			_ = tc.Cleanup(ctx) //nolint:errcheck // setup error takes precedence
			return nil, fmt.Errorf("testutils: %s: %w", step.name, err)
		}
	}
	return tc, nil
}

func (tc *TestContainers) setupPostgres(ctx context.Context) error {
	postgresContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.WithSQLDriver("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to start postgres container: %w", err)
	}
	tc.PostgresContainer = postgresContainer

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fmt.Errorf("failed to get postgres connection string: %w", err)
	}
	tc.DatabaseURL = connStr

	db, err := database.NewConnection(connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	tc.DB = db
	return nil
}

func (tc *TestContainers) setupMinio(ctx context.Context) error {
	minioContainer, err := minio.Run(ctx,
		"minio/minio:latest",
		minio.WithUsername(minioUser),
		minio.WithPassword(minioPass),
	)
	if err != nil {
		return fmt.Errorf("failed to start minio container: %w", err)
	}
	tc.MinioContainer = minioContainer

	endpoint, err := minioContainer.ConnectionString(ctx)
	if err != nil {
		return fmt.Errorf("failed to get minio endpoint: %w", err)
	}
	tc.MinioEndpoint = endpoint

	store, err := storage.NewMinIOStore(ctx, tc.StorageConfig())
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}
	tc.MinIOStore = store
	return nil
}

// setupRedis starts Valkey, which speaks the Redis protocol
func (tc *TestContainers) setupRedis(ctx context.Context) error {
	redisContainer, err := redisModule.Run(ctx,
		"valkey/valkey:7-alpine",
		redisModule.WithSnapshotting(10, 1),
		redisModule.WithLogLevel(redisModule.LogLevelVerbose),
	)
	if err != nil {
		return fmt.Errorf("failed to start valkey container: %w", err)
	}
	tc.RedisContainer = redisContainer

	endpoint, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		return fmt.Errorf("failed to get valkey endpoint: %w", err)
	}
	opts, err := redis.ParseURL(endpoint)
	if err != nil {
		return fmt.Errorf("failed to parse valkey endpoint: %w", err)
	}
	tc.RedisAddress = opts.Addr

	client, err := cache.NewRedisClient(tc.CacheConfig())
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	tc.RedisClient = client
	return nil
}

// StorageConfig points the MinIO backend at the test container
func (tc *TestContainers) StorageConfig() config.StorageConfig {
	return config.StorageConfig{
		Driver:          config.StorageDriverMinIO,
		Endpoint:        tc.MinioEndpoint,
		AccessKeyID:     minioUser,
		SecretAccessKey: minioPass,
		BucketName:      testBucket,
		Region:          "us-east-1",
	}
}

// CacheConfig points the list cache at the test container
func (tc *TestContainers) CacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Address:     tc.RedisAddress,
		DefaultTTL:  time.Hour,
		DialTimeout: 5 * time.Second,
	}
}

// ResetData empties the photos table and the cache
func (tc *TestContainers) ResetData(ctx context.Context) error {
	if _, err := tc.DB.ExecContext(ctx, "TRUNCATE photos RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to reset photos: %w", err)
	}
	if tc.RedisClient != nil {
		return tc.RedisClient.FlushCache(ctx)
	}
	return nil
}

// Cleanup terminates all test containers and closes connections
func (tc *TestContainers) Cleanup(ctx context.Context) error {
	var errs []error

	if tc.DB != nil {
		if err := tc.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	if tc.RedisClient != nil {
		if err := tc.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close valkey client: %w", err))
		}
	}

	for name, c := range map[string]testcontainers.Container{
		"postgres": tc.PostgresContainer,
		"minio":    tc.MinioContainer,
		"valkey":   tc.RedisContainer,
	} {
		if c == nil {
			continue
		}
		if err := c.Terminate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to terminate %s container: %w", name, err))
		}
	}

	return errors.Join(errs...)
}
