// Package handler exposes the notification CRUD and read-state endpoints.
// Mark-read/unread are dedicated state transitions, not a general PATCH.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"backoffice/internal/notification"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/platform/middleware"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/httputil"
	"backoffice/pkg/requestcontext"
)

// Handler handles notification endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *notification.Service
	metrics   *metrics.Metrics
	validator middleware.TokenValidator
}

// New creates a new notification Handler.
func New(service *notification.Service, logger *slog.Logger, m *metrics.Metrics, validator middleware.TokenValidator) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		metrics:   m,
		validator: validator,
	}
}

// Register mounts the notification routes.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.UserAgent)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(h.metrics))
	router.Use(middleware.RequireAuth(h.validator, h.logger))

	router.Post("/", h.handleCreate)
	router.Get("/", h.handleList)
	router.Get("/unread-count", h.handleUnreadCount)
	router.Put("/{id}", h.handleUpdate)
	router.Delete("/{id}", h.handleDelete)
	router.Post("/{id}/read", h.handleMarkRead)
	router.Post("/{id}/unread", h.handleMarkUnread)

	r.Mount("/admin/notifications", router)
}

type writeRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// response wraps a record with the ownership display hint. canModify only
// gates which controls the client renders; the service re-checks ownership
// on every mutation regardless.
type response struct {
	notification.Record
	CanModify bool `json:"canModify"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	rec, err := h.service.Create(ctx, req.Title, req.Message)
	if err != nil {
		h.logger.WarnContext(ctx, "create notification failed",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, response{Record: rec, CanModify: true})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list notifications failed",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	viewer := requestcontext.AdminID(ctx)
	out := make([]response, 0, len(records))
	for _, rec := range records {
		out = append(out, response{Record: rec, CanModify: rec.CanModify(viewer)})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"notifications": out})
}

func (h *Handler) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.UnreadCount(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"unreadCount": count})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid notification id"))
		return
	}

	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	rec, err := h.service.Update(ctx, id, req.Title, req.Message)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, response{Record: rec, CanModify: true})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid notification id"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	h.handleSetRead(w, r, h.service.MarkRead)
}

func (h *Handler) handleMarkUnread(w http.ResponseWriter, r *http.Request) {
	h.handleSetRead(w, r, h.service.MarkUnread)
}

func (h *Handler) handleSetRead(w http.ResponseWriter, r *http.Request, apply func(context.Context, uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid notification id"))
		return
	}

	if err := apply(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
