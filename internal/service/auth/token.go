package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// ValidateToken verifies a session token and resolves its subject against
// the user store. The persisted record is the source of truth: a token whose
// subject no longer exists is unauthorized even if the signature is valid.
func (s *Service) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := s.tokens.ValidateToken(token)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}

	users, err := s.users.Load(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("auth.ValidateToken load users: %w", err)
	}
	if findByID(users, userID) < 0 {
		return uuid.Nil, domain.ErrUnauthorized
	}

	return userID, nil
}

// CurrentUser returns the full record of the authenticated user.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth.CurrentUser load users: %w", err)
	}

	idx := findByID(users, userID)
	if idx < 0 {
		return nil, fmt.Errorf("auth.CurrentUser %s: %w", userID, domain.ErrNotFound)
	}
	u := users[idx]
	return &u, nil
}
