package focus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// RateInput holds a reader's rating of a focus.
type RateInput struct {
	Value int
	Note  string
}

// Rate upserts the requester's rating on a focus. Owners may never rate
// their own focus, regardless of the accepting-ratings flag; everyone else
// needs the flag set and a value in 1–5. A second rating from the same
// reader replaces the first in place.
func (s *Service) Rate(ctx context.Context, id, requesterID uuid.UUID, input RateInput) (*View, error) {
	var updated domain.Focus

	_, err := s.focos.Mutate(ctx, func(focos []domain.Focus) ([]domain.Focus, error) {
		idx := findFocus(focos, id)
		if idx < 0 {
			return nil, fmt.Errorf("focus.Rate %s: %w", id, domain.ErrNotFound)
		}
		f := focos[idx]

		if f.IsOwner(requesterID) {
			return nil, fmt.Errorf("focus.Rate own focus: %w", domain.ErrForbidden)
		}
		if !f.RequestRating {
			return nil, fmt.Errorf("focus.Rate not accepting ratings: %w", domain.ErrForbidden)
		}
		if input.Value < 1 || input.Value > 5 {
			return nil, domain.NewValidationError("value", "must be between 1 and 5")
		}

		now := time.Now()
		if existing := f.RatingBy(requesterID); existing != nil {
			existing.Value = input.Value
			existing.Note = input.Note
			existing.UpdatedAt = now
		} else {
			f.Ratings = append(f.Ratings, domain.Rating{
				ID:        uuid.NewString(),
				UserID:    requesterID,
				Value:     input.Value,
				Note:      input.Note,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}

		focos[idx] = f
		updated = f
		return focos, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "focus rated",
		slog.String("focus_id", id.String()),
		slog.Int("value", input.Value),
	)

	v := view(updated, requesterID)
	return &v, nil
}
