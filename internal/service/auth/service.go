// Package auth implements identity and session operations: registration,
// password and external login, token validation, and the total-friendship
// graph sync that runs on every new account.
package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/config"
	"github.com/storylab/backend/internal/domain"
)

// userStore defines the user collection interface needed by the auth service.
type userStore interface {
	Load(ctx context.Context) ([]domain.User, error)
	Mutate(ctx context.Context, fn func([]domain.User) ([]domain.User, error)) ([]domain.User, error)
}

// tokenManager defines the session token interface needed by the auth service.
type tokenManager interface {
	GenerateToken(userID uuid.UUID) (string, error)
	ValidateToken(token string) (uuid.UUID, error)
}

// Service implements auth operations.
type Service struct {
	log    *slog.Logger
	users  userStore
	tokens tokenManager
	cfg    config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, users userStore, tokens tokenManager, cfg config.AuthConfig) *Service {
	return &Service{
		log:    logger.With("service", "auth"),
		users:  users,
		tokens: tokens,
		cfg:    cfg,
	}
}

// findByEmail returns the index of the user with the given email,
// case-insensitively, or -1.
func findByEmail(users []domain.User, email string) int {
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return i
		}
	}
	return -1
}

// findByID returns the index of the user with the given ID, or -1.
func findByID(users []domain.User, id uuid.UUID) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
