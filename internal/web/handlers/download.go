package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/platform/storage"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// downloadPhotoHandler streams a photo as an attachment. When the image
// cannot be fetched the client is sent to the original URL instead.
func (h *Handler) downloadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "DownloadPhoto", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	id := chi.URLParam(r, "id")
	p, err := h.photos.Get(ctx, id)
	if err != nil {
		if errors.Is(err, photo.ErrPhotoNotFound) {
			h.writeJSON(w, r, http.StatusNotFound, messageResponse{Message: "Photo not found"})
			return
		}
		span.RecordError(err)
		h.writeJSON(w, r, http.StatusInternalServerError, messageResponse{Message: "Error loading photo"})
		return
	}
	span.SetAttributes(attribute.String("photo.id", p.ID))

	body, contentType, err := h.fetchImage(ctx, p.URL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed, redirecting")
		h.logger.Warn(ctx).Err(err).Str("photo_id", p.ID).Msg("Download fetch failed, redirecting to source")
		http.Redirect(w, r, p.URL, http.StatusFound)
		return
	}
	defer body.Close() //nolint:errcheck // read side

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": p.DownloadName(),
	}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn(ctx).Err(err).Str("photo_id", p.ID).Msg("Download interrupted")
	}
}

// fetchImage opens the image bytes behind rawURL. Uploads served by this
// process are read from the blob store directly.
func (h *Handler) fetchImage(ctx context.Context, rawURL string) (io.ReadCloser, string, error) {
	if name, ok := h.localUploadName(rawURL); ok {
		rc, err := h.blobs.Open(ctx, name)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", photo.ErrDownloadFailed, err)
		}
		return rc, contentTypeFor(name), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", photo.ErrDownloadFailed, err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", photo.ErrDownloadFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close() //nolint:errcheck // discarded response
		return nil, "", fmt.Errorf("%w: upstream status %d", photo.ErrDownloadFailed, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return resp.Body, contentType, nil
}

func (h *Handler) localUploadName(rawURL string) (string, bool) {
	rest, ok := strings.CutPrefix(rawURL, h.baseURL+"/uploads/")
	if !ok {
		rest, ok = strings.CutPrefix(rawURL, "/uploads/")
	}
	if !ok {
		return "", false
	}
	name, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return name, true
}

// serveUploadHandler serves stored upload bytes
func (h *Handler) serveUploadHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	rc, err := h.blobs.Open(ctx, name)
	if err != nil {
		if errors.Is(err, photo.ErrBlobNotFound) || errors.Is(err, storage.ErrInvalidName) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error(ctx).Err(err).Str("name", name).Msg("Failed to open upload")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer rc.Close() //nolint:errcheck // read side

	w.Header().Set("Content-Type", contentTypeFor(name))
	if rs, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, name, time.Time{}, rs)
		return
	}
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn(ctx).Err(err).Str("name", name).Msg("Upload transfer interrupted")
	}
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
