package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/storylab/backend/internal/domain"
)

// Register creates a new user with email + password authentication, runs the
// friend graph sync, and issues a session token.
// Returns ErrAlreadyExists if the email is already taken (case-insensitive).
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Theme:        domain.DefaultTheme(),
		Friends:      []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = s.users.Mutate(ctx, func(users []domain.User) ([]domain.User, error) {
		if findByEmail(users, input.Email) >= 0 {
			return nil, fmt.Errorf("auth.Register email %q: %w", input.Email, domain.ErrAlreadyExists)
		}
		return append(users, newUser), nil
	})
	if err != nil {
		return nil, err
	}

	synced, err := s.syncFriends(ctx, newUser.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Register sync friends: %w", err)
	}

	token, err := s.tokens.GenerateToken(synced.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", synced.ID.String()),
		slog.Int("friends", len(synced.Friends)),
	)

	return &AuthResult{Token: token, User: *synced}, nil
}
