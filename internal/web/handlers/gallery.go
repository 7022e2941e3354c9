package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/gallery"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// GalleryImage is a gallery record with its responsive sources
type GalleryImage struct {
	photo.Photo
	SrcSet string `json:"srcset,omitempty"`
}

// GalleryResponse is one page of the gallery
type GalleryResponse struct {
	Images        []GalleryImage `json:"images"`
	HasMore       bool           `json:"has_more"`
	NextPage      int            `json:"next_page"`
	AvailableTags []string       `json:"available_tags"`
	TotalLoaded   int            `json:"total_loaded"`
}

// galleryHandler serves one page of the catalog with synthetic fill. tag and
// q narrow the page; available_tags always reflects the unfiltered page.
func (h *Handler) galleryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GalleryPage", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	query := r.URL.Query()
	page, err := intParam(query.Get("page"), 1)
	if err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, messageResponse{Message: err.Error()})
		return
	}
	pageSize, err := intParam(query.Get("page_size"), h.pageSize)
	if err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, messageResponse{Message: err.Error()})
		return
	}
	if pageSize > maxGalleryPageSize {
		h.writeJSON(w, r, http.StatusBadRequest, messageResponse{
			Message: fmt.Sprintf("page_size must be at most %d", maxGalleryPageSize),
		})
		return
	}

	result, err := h.paginator.LoadPage(ctx, page, pageSize)
	if err != nil {
		if errors.Is(err, photo.ErrInvalidPagination) {
			h.writeJSON(w, r, http.StatusBadRequest, messageResponse{Message: err.Error()})
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load page")
		h.logger.Error(ctx).Err(err).Int("page", page).Msg("Failed to load gallery page")
		h.writeJSON(w, r, http.StatusInternalServerError, messageResponse{Message: "Error loading gallery"})
		return
	}

	if h.metrics != nil {
		h.metrics.RecordGalleryPage(ctx, result.Synthetic)
	}

	criteria := gallery.Criteria{Tag: query.Get("tag"), Query: query.Get("q")}
	visible := gallery.Filter(result.Records, criteria)

	images := make([]GalleryImage, 0, len(visible))
	for _, p := range visible {
		images = append(images, GalleryImage{Photo: p, SrcSet: photo.SrcSet(p.URL)})
	}

	span.SetAttributes(
		attribute.Int("gallery.page", page),
		attribute.Int("gallery.synthetic", result.Synthetic),
		attribute.Int("gallery.visible", len(images)),
	)

	h.writeJSON(w, r, http.StatusOK, GalleryResponse{
		Images:        images,
		HasMore:       result.HasMore,
		NextPage:      result.NextCursor,
		AvailableTags: photo.AvailableTags(result.Records),
		TotalLoaded:   (page-1)*pageSize + len(result.Records),
	})
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", photo.ErrInvalidPagination, raw)
	}
	return n, nil
}
