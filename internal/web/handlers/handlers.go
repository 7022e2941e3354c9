package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"photo-gallery/internal/config"
	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/observability"
	"photo-gallery/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/trace"
)

const (
	maxLoginBodySize   = 1 << 20
	maxMemoryPerUpload = 1 << 20 // rest of the multipart body spills to temp files
	maxGalleryPageSize = 100
	downloadTimeout    = 30 * time.Second
	corsMaxAge         = 300
)

// Handler serves the gallery HTTP API
type Handler struct {
	photos         photo.PhotoService
	auth           photo.AdminGate
	blobs          photo.BlobStore
	paginator      *gallery.Paginator
	storePaginator *gallery.Paginator
	checks         map[string]photo.HealthChecker

	profile       config.ProfileConfig
	corsOrigins   []string
	baseURL       string
	pageSize      int
	maxUploadSize int64

	logger  *observability.Logger
	tracer  trace.Tracer
	metrics *observability.HTTPMetrics
	client  *http.Client
}

// Option configures a Handler
type Option func(*Handler)

// WithTracer sets the tracer used for handler spans
func WithTracer(tracer trace.Tracer) Option {
	return func(h *Handler) {
		h.tracer = tracer
	}
}

// WithMetrics enables HTTP request metrics
func WithMetrics(metrics *observability.HTTPMetrics) Option {
	return func(h *Handler) {
		h.metrics = metrics
	}
}

// WithHTTPClient sets the client used to fetch remote images for download
func WithHTTPClient(client *http.Client) Option {
	return func(h *Handler) {
		h.client = client
	}
}

// NewWithContainer creates a handler over the container's services
func NewWithContainer(c *services.Container, opts ...Option) *Handler {
	cfg := c.Config()

	h := &Handler{
		photos:         c.PhotoService(),
		auth:           c.AuthService(),
		blobs:          c.Blobs(),
		paginator:      c.Paginator(),
		storePaginator: c.StorePaginator(),
		checks:         c.HealthChecks(),
		profile:        cfg.Profile,
		corsOrigins:    cfg.CORSAllowedOrigins,
		baseURL:        cfg.PublicBaseURL,
		pageSize:       cfg.Gallery.PageSize,
		maxUploadSize:  cfg.Storage.MaxUploadSize,
		logger:         c.Logger(),
		tracer:         observability.GetTracer(),
		client:         &http.Client{Timeout: downloadTimeout},
	}
	if h.pageSize <= 0 {
		h.pageSize = gallery.DefaultPageSize
	}
	if h.maxUploadSize <= 0 {
		h.maxUploadSize = 10 << 20
	}

	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes builds the router
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logger.AccessLog())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         corsMaxAge,
	}))
	r.Use(middleware.Recoverer)
	if h.metrics != nil {
		r.Use(observability.MetricsMiddleware(h.metrics))
	}
	r.Use(observability.TracingMiddleware(h.tracer))

	// Health checks
	r.Get("/healthz", h.healthzHandler)
	r.Get("/readyz", h.readyzHandler)

	// Stored uploads
	r.Get("/uploads/{name}", h.serveUploadHandler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/photos", func(r chi.Router) {
			r.Get("/", h.listPhotosHandler)
			r.Post("/", h.uploadPhotoHandler)
			r.Get("/{id}/download", h.downloadPhotoHandler)
		})
		r.Get("/gallery", h.galleryHandler)
		r.Get("/profile", h.profileHandler)
		r.Post("/login", h.loginHandler)
	})

	return r
}

// messageResponse is the error body shape of the photos endpoints
type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error(r.Context()).Err(err).Msg("Failed to encode response")
	}
}
