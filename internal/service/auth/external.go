package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// LoginExternal upserts a passwordless account for an identity asserted by
// an external provider (the web client forwards the Google profile). An
// existing account with the email just gets a fresh token; a missing one is
// created with defaults and run through the friend graph sync.
func (s *Service) LoginExternal(ctx context.Context, input ExternalLoginInput) (*AuthResult, error) {
	input.Email = strings.TrimSpace(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		user    domain.User
		created bool
	)

	_, err := s.users.Mutate(ctx, func(users []domain.User) ([]domain.User, error) {
		if idx := findByEmail(users, input.Email); idx >= 0 {
			user = users[idx]
			return users, nil
		}

		name := input.Name
		if name == "" {
			name, _, _ = strings.Cut(input.Email, "@")
		}

		now := time.Now()
		user = domain.User{
			ID:        uuid.New(),
			Email:     input.Email,
			Name:      name,
			AvatarURL: input.AvatarURL,
			Theme:     domain.DefaultTheme(),
			Friends:   []uuid.UUID{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		created = true
		return append(users, user), nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.LoginExternal upsert: %w", err)
	}

	if created {
		synced, err := s.syncFriends(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("auth.LoginExternal sync friends: %w", err)
		}
		user = *synced
		s.log.InfoContext(ctx, "external user created", slog.String("user_id", user.ID.String()))
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.LoginExternal issue token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}
