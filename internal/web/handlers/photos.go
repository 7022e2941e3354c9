package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"photo-gallery/internal/domain/photo"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	msgNoFile      = "No file uploaded."
	msgUploadError = "Error uploading file"
)

// StorePageResponse is the paged listing of stored records
type StorePageResponse struct {
	Images  []photo.Photo `json:"images"`
	HasMore bool          `json:"hasMore"`
	Total   int           `json:"total"`
}

// listPhotosHandler returns the stored records as a plain array, or one page
// of them when a page parameter is given
func (h *Handler) listPhotosHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListPhotos", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	query := r.URL.Query()
	if query.Get("page") == "" {
		photos := h.photos.List(ctx)
		span.SetAttributes(attribute.Int("photos.count", len(photos)))
		h.writeJSON(w, r, http.StatusOK, photos)
		return
	}

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, messageResponse{Message: "Invalid page parameter"})
		return
	}
	limit := h.pageSize
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			h.writeJSON(w, r, http.StatusBadRequest, messageResponse{Message: "Invalid limit parameter"})
			return
		}
	}

	result, err := h.storePaginator.LoadPage(ctx, page, limit)
	if err != nil {
		if errors.Is(err, photo.ErrInvalidPagination) {
			h.writeJSON(w, r, http.StatusBadRequest, messageResponse{Message: err.Error()})
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load page")
		h.logger.Error(ctx).Err(err).Int("page", page).Msg("Failed to load store page")
		h.writeJSON(w, r, http.StatusInternalServerError, messageResponse{Message: "Error loading photos"})
		return
	}

	h.writeJSON(w, r, http.StatusOK, StorePageResponse{
		Images:  result.Records,
		HasMore: result.HasMore,
		Total:   result.Total,
	})
}

// uploadPhotoHandler stores one multipart image and appends its record
func (h *Handler) uploadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UploadPhoto", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(maxMemoryPerUpload); err != nil {
		span.RecordError(err)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			span.SetStatus(codes.Error, "request too large")
			h.logger.Warn(ctx).Int64("limit", maxErr.Limit).Msg("Upload exceeds size limit")
			h.writeJSON(w, r, http.StatusRequestEntityTooLarge, messageResponse{Message: "File too large"})
			return
		}
		span.SetStatus(codes.Error, "failed to parse multipart form")
		h.logger.Warn(ctx).Err(err).Msg("Upload request without a multipart body")
		h.writeJSON(w, r, http.StatusBadRequest, messageResponse{Message: msgNoFile})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll() //nolint:errcheck // Cleanup operation
		}
	}()

	file, header, err := r.FormFile("photo")
	if err != nil {
		span.SetStatus(codes.Error, "no file in request")
		h.logger.Warn(ctx).Msg("Upload request with no file")
		h.writeJSON(w, r, http.StatusBadRequest, messageResponse{Message: msgNoFile})
		return
	}
	defer file.Close() //nolint:errcheck // multipart part

	req := &photo.CreatePhotoRequest{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		Tags:         r.FormValue("tags"),
		Photographer: r.FormValue("photographer"),
		Location:     r.FormValue("location"),
	}

	span.SetAttributes(
		attribute.String("upload.filename", header.Filename),
		attribute.Int64("upload.size", header.Size),
	)

	p, err := h.photos.Upload(ctx, req, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		if errors.Is(err, photo.ErrInvalidPhotoData) {
			h.writeJSON(w, r, http.StatusBadRequest, messageResponse{Message: err.Error()})
			return
		}
		h.logger.Error(ctx).Err(err).Str("filename", header.Filename).Msg("Upload failed")
		h.writeJSON(w, r, http.StatusInternalServerError, messageResponse{Message: msgUploadError})
		return
	}

	if h.metrics != nil {
		h.metrics.RecordUpload(ctx, header.Size)
	}
	span.SetStatus(codes.Ok, "uploaded")
	h.writeJSON(w, r, http.StatusCreated, p)
}
