package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "photo-gallery/http"
	healthzPath         = "/healthz"
	readyzPath          = "/readyz"
)

// HTTPMetrics holds the request instruments plus the gallery counters the
// handlers report into
type HTTPMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	activeRequests  metric.Int64UpDownCounter

	uploadSize       metric.Int64Histogram
	galleryPages     metric.Int64Counter
	syntheticRecords metric.Int64Counter
}

// NewHTTPMetrics creates and registers the instruments on meter
func NewHTTPMetrics(meter metric.Meter) (*HTTPMetrics, error) {
	var (
		m   HTTPMetrics
		err error
	)

	if m.requestCount, err = meter.Int64Counter("http.server.request.count",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if m.requestDuration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Duration of HTTP requests"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.activeRequests, err = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if m.uploadSize, err = meter.Int64Histogram("gallery.upload.size",
		metric.WithDescription("Size of stored uploads"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	if m.galleryPages, err = meter.Int64Counter("gallery.pages.served",
		metric.WithDescription("Gallery pages served"),
		metric.WithUnit("{page}"),
	); err != nil {
		return nil, err
	}
	if m.syntheticRecords, err = meter.Int64Counter("gallery.records.synthetic",
		metric.WithDescription("Placeholder records generated to fill pages"),
		metric.WithUnit("{record}"),
	); err != nil {
		return nil, err
	}

	return &m, nil
}

// RecordUpload records one stored upload of size bytes
func (m *HTTPMetrics) RecordUpload(ctx context.Context, size int64) {
	m.uploadSize.Record(ctx, size)
}

// RecordGalleryPage records one served page and how many of its records were synthetic
func (m *HTTPMetrics) RecordGalleryPage(ctx context.Context, synthetic int) {
	m.galleryPages.Add(ctx, 1)
	if synthetic > 0 {
		m.syntheticRecords.Add(ctx, int64(synthetic))
	}
}

func isProbe(r *http.Request) bool {
	return r.URL.Path == healthzPath || r.URL.Path == readyzPath
}

// MetricsMiddleware records request count, duration and concurrency.
// Probe requests are not recorded.
func MetricsMiddleware(metrics *HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isProbe(r) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			start := time.Now()
			metrics.activeRequests.Add(ctx, 1)
			defer metrics.activeRequests.Add(ctx, -1)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			attrs := metric.WithAttributes(
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRoute(routePattern(r)),
				semconv.HTTPResponseStatusCode(statusOf(ww)),
			)
			metrics.requestCount.Add(ctx, 1, attrs)
			metrics.requestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		})
	}
}

// TracingMiddleware starts a server span per request. Probe requests are not traced.
func TracingMiddleware(tracer trace.Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isProbe(r) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.URLPath(r.URL.Path),
					semconv.UserAgentOriginal(r.UserAgent()),
					semconv.ClientAddress(r.RemoteAddr),
				),
			)
			defer span.End()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := statusOf(ww)
			span.SetName(r.Method + " " + routePattern(r))
			span.SetAttributes(
				semconv.HTTPRoute(routePattern(r)),
				semconv.HTTPResponseStatusCode(status),
				attribute.Int("http.response.body.size", ww.BytesWritten()),
			)
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}

// statusOf returns the written status, which is 200 when the handler never
// called WriteHeader
func statusOf(ww middleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}

// routePattern returns the matched chi route, falling back to the raw path.
// Upload names stay out of metric labels this way.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// GetTracer returns the global tracer for HTTP instrumentation
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// GetMeter returns the global meter for HTTP metrics
func GetMeter() metric.Meter {
	return otel.Meter(instrumentationName)
}
