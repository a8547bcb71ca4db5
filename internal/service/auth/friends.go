package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// syncFriends enforces the total-friendship invariant after a new account is
// created: every existing user gains the new id (set semantics) and the new
// user's friend list becomes the id list of everyone else. The whole user
// collection is rewritten; acceptable only at the app's two-digit scale.
func (s *Service) syncFriends(ctx context.Context, newUserID uuid.UUID) (*domain.User, error) {
	var synced *domain.User

	_, err := s.users.Mutate(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := findByID(users, newUserID)
		if idx < 0 {
			return nil, fmt.Errorf("sync friends for %s: %w", newUserID, domain.ErrNotFound)
		}

		friends := make([]uuid.UUID, 0, len(users)-1)
		for i := range users {
			if users[i].ID == newUserID {
				continue
			}
			users[i].AddFriend(newUserID)
			friends = append(friends, users[i].ID)
		}
		users[idx].Friends = friends

		u := users[idx]
		synced = &u
		return users, nil
	})
	if err != nil {
		return nil, err
	}

	return synced, nil
}
