package presence

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storylab/backend/internal/domain"
)

// fakeConn records every frame written to it.
type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) lastEvent(t *testing.T) *Event {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.frames) - 1; i >= 0; i-- {
		var ev Event
		if err := json.Unmarshal(c.frames[i], &ev); err == nil && ev.Event != "" {
			return &ev
		}
	}
	return nil
}

// waitFor polls until cond holds or the deadline passes. The write pump is
// asynchronous, so broadcast assertions need a grace period.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never held")
}

type userDirectoryStub struct {
	users []domain.User
}

func (d *userDirectoryStub) Load(_ context.Context) ([]domain.User, error) {
	return d.users, nil
}

func newTestTracker(users ...domain.User) *Tracker {
	return NewTracker(slog.Default(), &userDirectoryStub{users: users})
}

func testUser(name string) domain.User {
	return domain.User{ID: uuid.New(), Email: name + "@example.com", Name: name}
}

func TestTracker_ConnectBroadcastsOnlineList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	alice := testUser("alice")
	tracker := newTestTracker(alice)

	conn := &fakeConn{}
	tracker.Connect(ctx, alice.ID, conn)

	waitFor(t, func() bool { return conn.lastEvent(t) != nil })

	ev := conn.lastEvent(t)
	require.NotNil(t, ev)
	assert.Equal(t, EventPresenceUpdate, ev.Event)
	require.Len(t, ev.Data, 1)
	assert.Equal(t, alice.ID, ev.Data[0].ID)
}

func TestTracker_DisconnectRemovesUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	alice, bob := testUser("alice"), testUser("bob")
	tracker := newTestTracker(alice, bob)

	aliceConn, bobConn := &fakeConn{}, &fakeConn{}
	aliceClient := tracker.Connect(ctx, alice.ID, aliceConn)
	tracker.Connect(ctx, bob.ID, bobConn)

	waitFor(t, func() bool {
		ev := bobConn.lastEvent(t)
		return ev != nil && len(ev.Data) == 2
	})

	tracker.Disconnect(ctx, aliceClient)

	waitFor(t, func() bool {
		ev := bobConn.lastEvent(t)
		return ev != nil && len(ev.Data) == 1
	})

	online, err := tracker.Online(ctx)
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, bob.ID, online[0].ID)
}

func TestTracker_ReconnectReplacesOldConnection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	alice := testUser("alice")
	tracker := newTestTracker(alice)

	oldConn, newConn := &fakeConn{}, &fakeConn{}
	oldClient := tracker.Connect(ctx, alice.ID, oldConn)
	tracker.Connect(ctx, alice.ID, newConn)

	// The replaced connection gets closed; the user stays online.
	waitFor(t, func() bool {
		oldConn.mu.Lock()
		defer oldConn.mu.Unlock()
		return oldConn.closed
	})

	online, err := tracker.Online(ctx)
	require.NoError(t, err)
	assert.Len(t, online, 1)

	// The stale client's disconnect must not take the new connection offline.
	tracker.Disconnect(ctx, oldClient)
	online, err = tracker.Online(ctx)
	require.NoError(t, err)
	assert.Len(t, online, 1)
}

func TestTracker_OnlineSkipsUnknownIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := newTestTracker() // empty directory

	tracker.Connect(ctx, uuid.New(), &fakeConn{})

	online, err := tracker.Online(ctx)
	require.NoError(t, err)
	assert.Empty(t, online)
}

func TestTracker_BroadcastSanitizesUsers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	alice := testUser("alice")
	alice.PasswordHash = "$2a$10$secret"
	tracker := newTestTracker(alice)

	conn := &fakeConn{}
	tracker.Connect(ctx, alice.ID, conn)

	waitFor(t, func() bool { return len(frames(conn)) > 0 })

	for _, frame := range frames(conn) {
		assert.NotContains(t, string(frame), "secret")
		assert.NotContains(t, string(frame), "passwordHash")
	}
}

func frames(c *fakeConn) [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.frames))
	copy(out, c.frames)
	return out
}
