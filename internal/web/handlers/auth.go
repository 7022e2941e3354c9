package handlers

import (
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LoginRequest is the admin login body
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse reports the login outcome
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Login", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBodySize)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		span.SetStatus(codes.Error, "malformed body")
		h.writeJSON(w, r, http.StatusBadRequest, LoginResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := h.auth.Login(ctx, req.Password); err != nil {
		span.SetStatus(codes.Error, "rejected")
		h.writeJSON(w, r, http.StatusUnauthorized, LoginResponse{Success: false, Message: "Invalid password"})
		return
	}

	h.writeJSON(w, r, http.StatusOK, LoginResponse{Success: true, Message: "Login successful"})
}
