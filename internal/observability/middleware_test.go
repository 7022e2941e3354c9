package observability

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func newTestRouter(mw func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(mw)
	r.Get("/uploads/{name}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("img"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewHTTPMetrics(mp.Meter("test"))
	require.NoError(t, err)

	router := newTestRouter(MetricsMiddleware(metrics))
	for _, path := range []string{"/uploads/1_a.jpg", "/uploads/2_b.jpg", "/healthz"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.server.request.count" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1, "health checks are skipped and upload names collapse into one route")
			dp := sum.DataPoints[0]
			assert.Equal(t, int64(2), dp.Value)
			route, ok := dp.Attributes.Value(semconv.HTTPRouteKey)
			require.True(t, ok)
			assert.Equal(t, "/uploads/{name}", route.AsString())
			found = true
		}
	}
	assert.True(t, found, "request count metric should be recorded")
}

func TestTracingMiddleware_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	router := newTestRouter(TracingMiddleware(tp.Tracer("test")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/1_a.jpg", nil))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes(), semconv.HTTPRoute("/uploads/{name}"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.response.status_code", http.StatusOK))
}

func TestLogger_WritesTraceFreeJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{ServiceName: "photo-gallery", LogLevel: "info"}, &buf)

	logger.Debug(context.Background()).Msg("hidden")
	logger.Info(context.Background()).Str("photo_id", "7").Msg("stored")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"photo_id":"7"`)
	assert.Contains(t, out, `"service":"photo-gallery"`)
	assert.NotContains(t, out, "trace_id")
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	assert.NotPanics(t, func() {
		logger.Error(context.Background()).Msg("discarded")
	})
}

func TestHTTPMetrics_GalleryCounters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewHTTPMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordGalleryPage(ctx, 0)
	metrics.RecordGalleryPage(ctx, 5)
	metrics.RecordUpload(ctx, 2048)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(2), sums["gallery.pages.served"])
	assert.Equal(t, int64(5), sums["gallery.records.synthetic"])
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{LogLevel: "info"}, &buf).Component("http")

	r := chi.NewRouter()
	r.Use(logger.AccessLog())
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"path":"/missing"`)
	assert.Contains(t, out, `"component":"http"`)
}
