// Package ws upgrades authenticated HTTP requests to presence WebSocket
// connections. The socket is push-only: client frames are read and discarded,
// and the read loop exists solely to detect disconnects.
package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/storylab/backend/internal/presence"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Handler serves GET /ws.
type Handler struct {
	log      *slog.Logger
	tokens   tokenValidator
	tracker  *presence.Tracker
	upgrader websocket.Upgrader
}

// NewHandler creates a ws Handler. Origin checking is left to the CORS layer
// for REST; the socket accepts any origin since the token is the credential.
func NewHandler(logger *slog.Logger, tokens tokenValidator, tracker *presence.Tracker) *Handler {
	return &Handler{
		log:     logger.With("handler", "ws"),
		tokens:  tokens,
		tracker: tracker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Serve authenticates the request, upgrades it, and keeps the user marked
// online until the connection drops. The token travels in the `token` query
// parameter (browser WebSocket clients cannot set headers) with a bearer
// header fallback.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = bearerToken(r)
	}
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.tokens.ValidateToken(r.Context(), token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.log.WarnContext(r.Context(), "websocket upgrade failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
		)
		return
	}

	// The request context dies with the handler; presence outlives it.
	ctx := context.WithoutCancel(r.Context())

	client := h.tracker.Connect(ctx, userID, conn)
	defer h.tracker.Disconnect(ctx, client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
