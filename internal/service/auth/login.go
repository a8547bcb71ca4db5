package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/storylab/backend/internal/domain"
)

// Login authenticates a user with email + password.
// Returns ErrNotFound when no account has the email and ErrUnauthorized when
// the password does not verify.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = strings.TrimSpace(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth.Login load users: %w", err)
	}

	idx := findByEmail(users, input.Email)
	if idx < 0 {
		return nil, fmt.Errorf("auth.Login email %q: %w", input.Email, domain.ErrNotFound)
	}
	user := users[idx]

	// Externally-authenticated accounts have no password hash and cannot
	// log in with a password.
	if user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()))

	return &AuthResult{Token: token, User: user}, nil
}
