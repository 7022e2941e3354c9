// Package services wires configuration into the stores, gallery engine and
// application services used by the HTTP handlers and the CLI.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"photo-gallery/internal/config"
	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/observability"
	"photo-gallery/internal/platform/cache"
	"photo-gallery/internal/platform/database"
	"photo-gallery/internal/platform/jsondb"
	"photo-gallery/internal/platform/storage"
	"photo-gallery/internal/services/implementations"
)

// Backends are the persistence dependencies a Container is assembled from
type Backends struct {
	Store photo.Store
	Blobs photo.BlobStore
	// Cache is optional
	Cache photo.ListCache
}

// Container holds all the application dependencies
type Container struct {
	config *config.Config
	logger *observability.Logger

	db    *sql.DB
	redis *cache.RedisClient

	store photo.Store
	blobs photo.BlobStore

	catalog        *gallery.Catalog
	paginator      *gallery.Paginator
	storePaginator *gallery.Paginator

	photoService photo.PhotoService
	authService  photo.AdminGate

	checks map[string]photo.HealthChecker
}

// NewContainer opens the configured backends and assembles the services
func NewContainer(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Container, error) {
	c := &Container{
		config: cfg,
		logger: logger,
	}

	store, err := c.openStore(ctx)
	if err != nil {
		_ = c.Close() //nolint:errcheck // setup error takes precedence
		return nil, err
	}

	blobs, err := c.openBlobs(ctx)
	if err != nil {
		_ = c.Close() //nolint:errcheck // setup error takes precedence
		return nil, err
	}

	var listCache photo.ListCache
	if cfg.Cache.Enabled {
		rc, err := cache.NewRedisClient(cfg.Cache)
		if err != nil {
			// the cache only saves store reads
			logger.Warn(ctx).Err(err).Str("address", cfg.Cache.Address).Msg("Photo list cache unavailable, continuing without it")
		} else {
			c.redis = rc
			listCache = rc
		}
	}

	c.assemble(Backends{Store: store, Blobs: blobs, Cache: listCache})
	logger.Info(ctx).
		Str("store", cfg.StoreDriver).
		Str("storage", cfg.Storage.Driver).
		Bool("cache", c.redis != nil).
		Msg("Dependency injection container initialized successfully")
	return c, nil
}

// NewContainerWithBackends assembles services over already opened backends
func NewContainerWithBackends(cfg *config.Config, logger *observability.Logger, b Backends) *Container {
	c := &Container{
		config: cfg,
		logger: logger,
	}
	c.assemble(b)
	return c
}

func (c *Container) openStore(ctx context.Context) (photo.Store, error) {
	switch c.config.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := database.NewConnection(c.config.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.db = db
		if err := database.RunMigrations(ctx, db, c.logger); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return database.NewPhotoRepository(db), nil
	case config.StoreDriverJSON, "":
		return jsondb.New(c.config.DataFile, c.logger.Component("jsondb")), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", c.config.StoreDriver)
	}
}

func (c *Container) openBlobs(ctx context.Context) (photo.BlobStore, error) {
	switch c.config.Storage.Driver {
	case config.StorageDriverMinIO:
		s, err := storage.NewMinIOStore(ctx, c.config.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		return s, nil
	case config.StorageDriverLocal, "":
		s, err := storage.NewLocalStore(c.config.Storage.UploadsDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.config.Storage.Driver)
	}
}

func (c *Container) assemble(b Backends) {
	c.checks = make(map[string]photo.HealthChecker)
	if hc, ok := b.Store.(photo.HealthChecker); ok {
		c.checks["store"] = hc
	}
	if hc, ok := b.Blobs.(photo.HealthChecker); ok {
		c.checks["storage"] = hc
	}
	if hc, ok := b.Cache.(photo.HealthChecker); ok {
		c.checks["cache"] = hc
	}

	c.store = b.Store
	if b.Cache != nil {
		c.store = cache.NewCachedStore(b.Store, b.Cache, c.logger.Component("cache"))
	}
	c.blobs = b.Blobs

	c.catalog = gallery.NewCatalog(c.store, gallery.Seed(), c.logger.Component("catalog"))
	c.paginator = gallery.NewPaginator(c.catalog, gallery.WithCeiling(c.config.Gallery.Ceiling))
	c.storePaginator = gallery.NewPaginator(gallery.NewCatalog(c.store, nil, c.logger), gallery.WithoutSynthesis())

	c.photoService = implementations.NewPhotoService(c.store, c.blobs, c.catalog, c.config.PublicBaseURL, c.logger)
	c.authService = implementations.NewAuthService(c.config.AdminPassword, c.logger)
}

func (c *Container) Config() *config.Config {
	return c.config
}

func (c *Container) Logger() *observability.Logger {
	return c.logger
}

func (c *Container) Store() photo.Store {
	return c.store
}

func (c *Container) Blobs() photo.BlobStore {
	return c.blobs
}

func (c *Container) Catalog() *gallery.Catalog {
	return c.catalog
}

// Paginator pages the catalog with synthetic fill
func (c *Container) Paginator() *gallery.Paginator {
	return c.paginator
}

// StorePaginator pages the persisted store only
func (c *Container) StorePaginator() *gallery.Paginator {
	return c.storePaginator
}

func (c *Container) PhotoService() photo.PhotoService {
	return c.photoService
}

func (c *Container) AuthService() photo.AdminGate {
	return c.authService
}

// HealthChecks returns readiness checks keyed by dependency name
func (c *Container) HealthChecks() map[string]photo.HealthChecker {
	return c.checks
}

// Close releases the database and cache connections
func (c *Container) Close() error {
	var errs []error
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close cache: %w", err))
		}
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
