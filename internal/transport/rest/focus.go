package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
	"github.com/storylab/backend/internal/service/focus"
	"github.com/storylab/backend/pkg/ctxutil"
)

// focusService defines the minimal interface needed by FocusHandler.
type focusService interface {
	List(ctx context.Context, requesterID uuid.UUID, filters focus.ListFilters) ([]focus.View, error)
	Create(ctx context.Context, requesterID uuid.UUID, input focus.CreateInput) (*focus.View, error)
	Update(ctx context.Context, id, requesterID uuid.UUID, input focus.UpdateInput) (*focus.View, error)
	Rate(ctx context.Context, id, requesterID uuid.UUID, input focus.RateInput) (*focus.View, error)
}

// FocusHandler serves focus REST endpoints.
type FocusHandler struct {
	svc focusService
	log *slog.Logger
}

// NewFocusHandler creates a FocusHandler.
func NewFocusHandler(svc focusService, logger *slog.Logger) *FocusHandler {
	return &FocusHandler{svc: svc, log: logger.With("handler", "focus")}
}

// focusResponse is a focus annotated for the requester. The raw rating list
// never leaves the server; clients get the summary.
type focusResponse struct {
	ID                 uuid.UUID            `json:"id"`
	CreatedBy          uuid.UUID            `json:"createdBy"`
	Title              string               `json:"title"`
	Board              domain.Board         `json:"board"`
	Category           string               `json:"category"`
	Subcategories      []string             `json:"subcategories"`
	Status             domain.Status        `json:"status"`
	AllowComments      bool                 `json:"allowComments"`
	AllowReviews       bool                 `json:"allowReviews"`
	AllowResenha       bool                 `json:"allowResenha"`
	RequestRating      bool                 `json:"requestRating"`
	Body               string               `json:"body"`
	Attachments        []domain.Attachment  `json:"attachments"`
	CoverImage         string               `json:"coverImage"`
	ReadingTimeMinutes *int                 `json:"readingTimeMinutes"`
	CanEdit            bool                 `json:"canEdit"`
	RatingSummary      domain.RatingSummary `json:"ratingSummary"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

func toFocusResponse(v focus.View) focusResponse {
	return focusResponse{
		ID:                 v.ID,
		CreatedBy:          v.CreatedBy,
		Title:              v.Title,
		Board:              v.Board,
		Category:           v.Category,
		Subcategories:      v.Subcategories,
		Status:             v.Status,
		AllowComments:      v.AllowComments,
		AllowReviews:       v.AllowReviews,
		AllowResenha:       v.AllowResenha,
		RequestRating:      v.RequestRating,
		Body:               v.Body,
		Attachments:        v.Attachments,
		CoverImage:         v.CoverImage,
		ReadingTimeMinutes: v.ReadingTimeMinutes,
		CanEdit:            v.CanEdit,
		RatingSummary:      v.Summary,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

// List handles GET /focos with optional exact-match query filters.
func (h *FocusHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	var filters focus.ListFilters
	if q.Has("board") {
		v := q.Get("board")
		filters.Board = &v
	}
	if q.Has("status") {
		v := q.Get("status")
		filters.Status = &v
	}
	if q.Has("category") {
		v := q.Get("category")
		filters.Category = &v
	}
	if q.Has("subcategory") {
		v := q.Get("subcategory")
		filters.Subcategory = &v
	}
	if q.Has("allowReviews") {
		v, err := strconv.ParseBool(q.Get("allowReviews"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "allowReviews must be a boolean")
			return
		}
		filters.AllowReviews = &v
	}
	if q.Has("allowResenha") {
		v, err := strconv.ParseBool(q.Get("allowResenha"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "allowResenha must be a boolean")
			return
		}
		filters.AllowResenha = &v
	}

	views, err := h.svc.List(r.Context(), userID, filters)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	focos := make([]focusResponse, 0, len(views))
	for _, v := range views {
		focos = append(focos, toFocusResponse(v))
	}
	writeJSON(w, http.StatusOK, map[string][]focusResponse{"focos": focos})
}

type createFocusRequest struct {
	Title         string              `json:"title"`
	Board         string              `json:"board"`
	Category      string              `json:"category"`
	Subcategories []string            `json:"subcategories"`
	Status        string              `json:"status"`
	AllowComments bool                `json:"allowComments"`
	AllowReviews  bool                `json:"allowReviews"`
	AllowResenha  bool                `json:"allowResenha"`
	RequestRating bool                `json:"requestRating"`
	Body          string              `json:"body"`
	Attachments   []domain.Attachment `json:"attachments"`
	CoverImage    string              `json:"coverImage"`
}

// Create handles POST /focos.
func (h *FocusHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createFocusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.svc.Create(r.Context(), userID, focus.CreateInput{
		Title:         req.Title,
		Board:         req.Board,
		Category:      req.Category,
		Subcategories: req.Subcategories,
		Status:        req.Status,
		AllowComments: req.AllowComments,
		AllowReviews:  req.AllowReviews,
		AllowResenha:  req.AllowResenha,
		RequestRating: req.RequestRating,
		Body:          req.Body,
		Attachments:   req.Attachments,
		CoverImage:    req.CoverImage,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]focusResponse{"focus": toFocusResponse(*v)})
}

type updateFocusRequest struct {
	Title         *string             `json:"title"`
	Board         *string             `json:"board"`
	Category      *string             `json:"category"`
	Subcategories []string            `json:"subcategories"`
	Status        *string             `json:"status"`
	AllowComments *bool               `json:"allowComments"`
	AllowReviews  *bool               `json:"allowReviews"`
	AllowResenha  *bool               `json:"allowResenha"`
	RequestRating *bool               `json:"requestRating"`
	Body          *string             `json:"body"`
	Attachments   []domain.Attachment `json:"attachments"`
	CoverImage    *string             `json:"coverImage"`
}

// Update handles PUT /focos/{id}.
func (h *FocusHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req updateFocusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.svc.Update(r.Context(), id, userID, focus.UpdateInput{
		Title:         req.Title,
		Board:         req.Board,
		Category:      req.Category,
		Subcategories: req.Subcategories,
		Status:        req.Status,
		AllowComments: req.AllowComments,
		AllowReviews:  req.AllowReviews,
		AllowResenha:  req.AllowResenha,
		RequestRating: req.RequestRating,
		Body:          req.Body,
		Attachments:   req.Attachments,
		CoverImage:    req.CoverImage,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]focusResponse{"focus": toFocusResponse(*v)})
}

type rateFocusRequest struct {
	Value int    `json:"value"`
	Note  string `json:"note"`
}

// Rate handles POST /focos/{id}/rating.
func (h *FocusHandler) Rate(w http.ResponseWriter, r *http.Request) {
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

	var req rateFocusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.svc.Rate(r.Context(), id, userID, focus.RateInput{
		Value: req.Value,
		Note:  req.Note,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]focusResponse{"focus": toFocusResponse(*v)})
}
