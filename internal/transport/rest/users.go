package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
	"github.com/storylab/backend/internal/service/user"
	"github.com/storylab/backend/pkg/ctxutil"
)

// userService defines the minimal interface needed by UserHandler.
type userService interface {
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input user.UpdateProfileInput) (*domain.User, error)
}

// UserHandler serves user listing and profile endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]domain.PublicUser{"users": domain.PublicUsers(users)})
}

type updateProfileRequest struct {
	Name      *string            `json:"name"`
	AvatarURL *string            `json:"avatarUrl"`
	Bio       *string            `json:"bio"`
	Theme     *domain.ThemePatch `json:"theme"`
}

// UpdateProfile handles PUT /profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateProfile(r.Context(), userID, user.UpdateProfileInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
		Theme:     req.Theme,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]domain.PublicUser{"user": updated.Public()})
}
