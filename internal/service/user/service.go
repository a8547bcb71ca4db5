// Package user implements user listing and profile updates.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// userStore defines the user collection interface needed by the user service.
type userStore interface {
	Load(ctx context.Context) ([]domain.User, error)
	Mutate(ctx context.Context, fn func([]domain.User) ([]domain.User, error)) ([]domain.User, error)
}

// Service implements user operations.
type Service struct {
	log   *slog.Logger
	users userStore
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userStore) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
	}
}

// List returns every user. Sanitization happens at the API boundary.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("user.List: %w", err)
	}
	return users, nil
}

// UpdateProfileInput is a partial profile update. Nil fields are left
// untouched; the theme patch merges shallowly into the stored theme.
type UpdateProfileInput struct {
	Name      *string
	AvatarURL *string
	Bio       *string
	Theme     *domain.ThemePatch
}

// UpdateProfile merges the input into the user's record and stamps updatedAt.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	var updated domain.User

	_, err := s.users.Mutate(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := -1
		for i := range users {
			if users[i].ID == userID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("user.UpdateProfile %s: %w", userID, domain.ErrNotFound)
		}

		u := users[idx]
		if input.Name != nil {
			u.Name = *input.Name
		}
		if input.AvatarURL != nil {
			u.AvatarURL = *input.AvatarURL
		}
		if input.Bio != nil {
			u.Bio = *input.Bio
		}
		if input.Theme != nil {
			u.Theme = u.Theme.Merge(*input.Theme)
		}
		u.UpdatedAt = time.Now()

		users[idx] = u
		updated = u
		return users, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "profile updated", slog.String("user_id", userID.String()))

	return &updated, nil
}
