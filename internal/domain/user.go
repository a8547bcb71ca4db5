package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an application user. The struct doubles as the storage shape of
// the users collection; PasswordHash is persisted but must never cross the
// API boundary — hand out PublicUser instead.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	PasswordHash string      `json:"passwordHash"`
	AvatarURL    string      `json:"avatarUrl"`
	Bio          string      `json:"bio"`
	Theme        Theme       `json:"theme"`
	Friends      []uuid.UUID `json:"friends"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Theme holds per-user UI customization.
type Theme struct {
	PrimaryColor string          `json:"primaryColor"`
	Mode         string          `json:"mode"`
	Background   string          `json:"background"`
	FontFamily   string          `json:"fontFamily"`
	Widgets      map[string]bool `json:"widgets"`
}

// DefaultTheme returns the theme assigned to newly registered users.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor: "#c3201f",
		Mode:         "light",
		Background:   "paper",
		FontFamily:   "Times New Roman",
		Widgets: map[string]bool{
			"recentFocos":  true,
			"metasStatus":  true,
			"friends":      true,
			"timeline":     false,
			"goalsChart":   false,
			"achievements": false,
			"readingClock": false,
			"importQueue":  false,
		},
	}
}

// ThemePatch is a partial theme update. Nil fields are left untouched; a
// non-nil Widgets map replaces the stored map wholesale (the merge is
// shallow by contract, not a deep merge).
type ThemePatch struct {
	PrimaryColor *string         `json:"primaryColor"`
	Mode         *string         `json:"mode"`
	Background   *string         `json:"background"`
	FontFamily   *string         `json:"fontFamily"`
	Widgets      map[string]bool `json:"widgets"`
}

// Merge applies a patch to a theme and returns the result.
func (t Theme) Merge(p ThemePatch) Theme {
	if p.PrimaryColor != nil {
		t.PrimaryColor = *p.PrimaryColor
	}
	if p.Mode != nil {
		t.Mode = *p.Mode
	}
	if p.Background != nil {
		t.Background = *p.Background
	}
	if p.FontFamily != nil {
		t.FontFamily = *p.FontFamily
	}
	if p.Widgets != nil {
		t.Widgets = p.Widgets
	}
	return t
}

// HasFriend reports whether id is already in the user's friend list.
func (u *User) HasFriend(id uuid.UUID) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// AddFriend appends id to the friend list with set semantics.
func (u *User) AddFriend(id uuid.UUID) {
	if !u.HasFriend(id) {
		u.Friends = append(u.Friends, id)
	}
}

// PublicUser is the sanitized user representation served by the API and the
// presence broadcast: everything except the password hash.
type PublicUser struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	AvatarURL string      `json:"avatarUrl"`
	Bio       string      `json:"bio"`
	Theme     Theme       `json:"theme"`
	Friends   []uuid.UUID `json:"friends"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Public strips the password hash from a user record.
func (u User) Public() PublicUser {
	friends := u.Friends
	if friends == nil {
		friends = []uuid.UUID{}
	}
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
		Theme:     u.Theme,
		Friends:   friends,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PublicUsers sanitizes a whole collection.
func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

// DedupeIDs returns ids with duplicates removed, preserving first-seen order.
func DedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
