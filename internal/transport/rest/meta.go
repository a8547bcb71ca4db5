package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
	"github.com/storylab/backend/internal/service/meta"
	"github.com/storylab/backend/pkg/ctxutil"
)

// metaService defines the minimal interface needed by MetaHandler.
type metaService interface {
	List(ctx context.Context, requesterID uuid.UUID) ([]meta.View, error)
	Create(ctx context.Context, requesterID uuid.UUID, input meta.CreateInput) (*meta.View, error)
	Update(ctx context.Context, id, requesterID uuid.UUID, input meta.UpdateInput) (*meta.View, error)
}

// MetaHandler serves meta (goal) REST endpoints.
type MetaHandler struct {
	svc metaService
	log *slog.Logger
}

// NewMetaHandler creates a MetaHandler.
func NewMetaHandler(svc metaService, logger *slog.Logger) *MetaHandler {
	return &MetaHandler{svc: svc, log: logger.With("handler", "meta")}
}

type metaResponse struct {
	domain.Meta
	CanEdit bool `json:"canEdit"`
}

func toMetaResponse(v meta.View) metaResponse {
	return metaResponse{Meta: v.Meta, CanEdit: v.CanEdit}
}

// List handles GET /metas.
func (h *MetaHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	views, err := h.svc.List(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	metas := make([]metaResponse, 0, len(views))
	for _, v := range views {
		metas = append(metas, toMetaResponse(v))
	}
	writeJSON(w, http.StatusOK, map[string][]metaResponse{"metas": metas})
}

type createMetaRequest struct {
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Category      string                 `json:"category"`
	Subcategories []string               `json:"subcategories"`
	DueDate       *string                `json:"dueDate"`
	IsJoint       bool                   `json:"isJoint"`
	Checklist     []domain.ChecklistItem `json:"checklist"`
	Participants  []uuid.UUID            `json:"participants"`
}

// Create handles POST /metas.
func (h *MetaHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createMetaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.svc.Create(r.Context(), userID, meta.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Subcategories: req.Subcategories,
		DueDate:       req.DueDate,
		IsJoint:       req.IsJoint,
		Checklist:     req.Checklist,
		Participants:  req.Participants,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]metaResponse{"meta": toMetaResponse(*v)})
}

type updateMetaRequest struct {
	Title         *string                `json:"title"`
	Description   *string                `json:"description"`
	Category      *string                `json:"category"`
	Subcategories []string               `json:"subcategories"`
	DueDate       *string                `json:"dueDate"`
	IsJoint       *bool                  `json:"isJoint"`
	Checklist     []domain.ChecklistItem `json:"checklist"`
	Participants  []uuid.UUID            `json:"participants"`
}

// Update handles PUT /metas/{id}.
func (h *MetaHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var req updateMetaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.svc.Update(r.Context(), id, userID, meta.UpdateInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Subcategories: req.Subcategories,
		DueDate:       req.DueDate,
		IsJoint:       req.IsJoint,
		Checklist:     req.Checklist,
		Participants:  req.Participants,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]metaResponse{"meta": toMetaResponse(*v)})
}
