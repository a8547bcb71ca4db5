// Package presence tracks which users currently hold an open WebSocket
// connection and broadcasts the online-user list on every change. The state
// is process-local and transient: a restart starts from empty, and there is
// no heartbeat — presence is exact only up to clean disconnects.
package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// EventPresenceUpdate is the event name carried by every broadcast frame.
const EventPresenceUpdate = "presence:update"

// Event is the wire frame pushed to connected clients.
type Event struct {
	Event string              `json:"event"`
	Data  []domain.PublicUser `json:"data"`
}

// userDirectory resolves online user ids to display data.
type userDirectory interface {
	Load(ctx context.Context) ([]domain.User, error)
}

// Tracker owns the userID → connection table. It is the only component
// mutating it, via Connect/Disconnect; the REST snapshot endpoint reads it
// through Online.
type Tracker struct {
	log   *slog.Logger
	users userDirectory

	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
}

// NewTracker creates an empty tracker.
func NewTracker(logger *slog.Logger, users userDirectory) *Tracker {
	return &Tracker{
		log:     logger.With("component", "presence"),
		users:   users,
		clients: make(map[uuid.UUID]*Client),
	}
}

// Connect registers an authenticated connection as online and broadcasts the
// updated list. A second connection for the same user replaces the first,
// matching the one-entry-per-user presence map.
func (t *Tracker) Connect(ctx context.Context, userID uuid.UUID, conn wsConn) *Client {
	c := newClient(userID, conn)
	go c.writePump()

	t.mu.Lock()
	if old, ok := t.clients[userID]; ok {
		old.close()
	}
	t.clients[userID] = c
	t.mu.Unlock()

	t.log.InfoContext(ctx, "user online", slog.String("user_id", userID.String()))
	t.broadcast(ctx)
	return c
}

// Disconnect removes a connection from the presence map and broadcasts. A
// stale client (already replaced by a newer connection for the same user)
// is closed without touching the map.
func (t *Tracker) Disconnect(ctx context.Context, c *Client) {
	t.mu.Lock()
	current, ok := t.clients[c.userID]
	if ok && current == c {
		delete(t.clients, c.userID)
	}
	t.mu.Unlock()

	c.close()

	if ok && current == c {
		t.log.InfoContext(ctx, "user offline", slog.String("user_id", c.userID.String()))
		t.broadcast(ctx)
	}
}

// Online resolves the currently connected users to sanitized records. Ids
// without a matching user record are skipped.
func (t *Tracker) Online(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := t.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("presence.Online: %w", err)
	}

	t.mu.RLock()
	ids := make([]uuid.UUID, 0, len(t.clients))
	for id := range t.clients {
		ids = append(ids, id)
	}
	t.mu.RUnlock()

	online := make([]domain.PublicUser, 0, len(ids))
	for _, id := range ids {
		for i := range users {
			if users[i].ID == id {
				online = append(online, users[i].Public())
				break
			}
		}
	}
	return online, nil
}

// broadcast pushes the full resolved online-user list to every connected
// client. Slow clients whose send buffer is full are dropped from the map —
// a stalled connection must not block the rest.
func (t *Tracker) broadcast(ctx context.Context) {
	online, err := t.Online(ctx)
	if err != nil {
		t.log.ErrorContext(ctx, "presence broadcast failed", slog.String("error", err.Error()))
		return
	}

	frame, err := json.Marshal(Event{Event: EventPresenceUpdate, Data: online})
	if err != nil {
		t.log.ErrorContext(ctx, "presence frame marshal failed", slog.String("error", err.Error()))
		return
	}

	t.mu.Lock()
	for id, c := range t.clients {
		if !c.trySend(frame) {
			delete(t.clients, id)
			c.close()
		}
	}
	t.mu.Unlock()
}
