package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/storylab/backend/internal/domain"
)

// presenceTracker exposes the online snapshot needed by PresenceHandler.
type presenceTracker interface {
	Online(ctx context.Context) ([]domain.PublicUser, error)
}

// PresenceHandler serves the REST snapshot of the presence state.
type PresenceHandler struct {
	tracker presenceTracker
	log     *slog.Logger
}

// NewPresenceHandler creates a PresenceHandler.
func NewPresenceHandler(tracker presenceTracker, logger *slog.Logger) *PresenceHandler {
	return &PresenceHandler{tracker: tracker, log: logger.With("handler", "presence")}
}

// Online handles GET /presence/online.
func (h *PresenceHandler) Online(w http.ResponseWriter, r *http.Request) {
	users, err := h.tracker.Online(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]domain.PublicUser{"users": users})
}
