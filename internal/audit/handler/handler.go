// Package handler exposes the audit trail over HTTP: the recordAction intake
// used by the CRUD tier, the paginated/searchable listing, per-record
// reconstructed views, and deletion.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"backoffice/internal/audit"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/platform/middleware"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/httputil"
	"backoffice/pkg/requestcontext"
)

// Handler handles audit endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *audit.Service
	recorder  *audit.Recorder
	metrics   *metrics.Metrics
	validator middleware.TokenValidator
}

// New creates a new audit Handler.
func New(service *audit.Service, recorder *audit.Recorder, logger *slog.Logger, m *metrics.Metrics, validator middleware.TokenValidator) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		recorder:  recorder,
		metrics:   m,
		validator: validator,
	}
}

// Register mounts the audit routes.
func (h *Handler) Register(r chi.Router) {
	auditRouter := chi.NewRouter()
	auditRouter.Use(middleware.Recovery(h.logger))
	auditRouter.Use(middleware.RequestID)
	auditRouter.Use(middleware.UserAgent)
	auditRouter.Use(middleware.Logger(h.logger))
	auditRouter.Use(middleware.Timeout(30 * time.Second))
	auditRouter.Use(middleware.ContentTypeJSON)
	auditRouter.Use(middleware.Latency(h.metrics))
	auditRouter.Use(middleware.RequireAuth(h.validator, h.logger))

	auditRouter.Post("/", h.handleRecordAction)
	auditRouter.Get("/", h.handleList)
	auditRouter.Get("/{id}/view", h.handleView)
	auditRouter.Delete("/{id}", h.handleDelete)
	auditRouter.Delete("/", h.handleDeleteAll)

	r.Mount("/admin/audit", auditRouter)
}

type recordActionRequest struct {
	ActionKind    string          `json:"actionKind"`
	DeviceInfo    string          `json:"deviceInfo,omitempty"`
	ChangePayload json.RawMessage `json:"changePayload,omitempty"`
}

// handleRecordAction is the produced recordAction surface: callers invoke it
// fire-and-forget after their own mutation succeeds, so it acknowledges with
// 202 regardless of whether the write ultimately lands.
func (h *Handler) handleRecordAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req recordActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid record action request",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.ActionKind == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "actionKind is required"))
		return
	}

	h.recorder.Record(ctx, req.ActionKind, req.DeviceInfo, req.ChangePayload)
	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

type listResponse struct {
	Records      []audit.Record `json:"records"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"totalPages"`
	TotalRecords int            `json:"totalRecords"`
}

// handleList serves the viewer: optional search term and 1-based page over a
// fixed page size.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit list failed",
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	viewer := audit.NewViewer(records)
	if term := r.URL.Query().Get("search"); term != "" {
		viewer.Search(term)
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			viewer.SetPage(page)
		}
	}

	page := viewer.Page()
	if page == nil {
		page = []audit.Record{}
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{
		Records:      page,
		Page:         viewer.CurrentPage(),
		TotalPages:   viewer.TotalPages(),
		TotalRecords: viewer.TotalRecords(),
	})
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid record id"))
		return
	}

	view, err := h.service.View(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid record id"))
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.service.DeleteAll(ctx); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
