package focus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// UpdateInput is a partial focus update. Nil fields are left untouched. The
// merge is explicit field by field so derived values (reading time,
// updatedAt) are recomputed after the merge and cannot be overridden by the
// client.
type UpdateInput struct {
	Title         *string
	Board         *string
	Category      *string
	Subcategories []string
	Status        *string
	AllowComments *bool
	AllowReviews  *bool
	AllowResenha  *bool
	RequestRating *bool
	Body          *string
	Attachments   []domain.Attachment
	CoverImage    *string
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Title != nil && *i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "must not be empty"})
	}
	if i.Status != nil && !domain.Status(*i.Status).Valid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Update merges the input into an existing focus. Only the owner may update;
// reading time is re-derived from the merged body and attachments under the
// completed-status rule.
func (s *Service) Update(ctx context.Context, id, requesterID uuid.UUID, input UpdateInput) (*View, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated domain.Focus

	_, err := s.focos.Mutate(ctx, func(focos []domain.Focus) ([]domain.Focus, error) {
		idx := findFocus(focos, id)
		if idx < 0 {
			return nil, fmt.Errorf("focus.Update %s: %w", id, domain.ErrNotFound)
		}
		f := focos[idx]
		if !f.IsOwner(requesterID) {
			return nil, fmt.Errorf("focus.Update %s: %w", id, domain.ErrForbidden)
		}

		if input.Title != nil {
			f.Title = *input.Title
		}
		if input.Board != nil {
			f.Board = domain.Board(*input.Board)
		}
		if input.Category != nil {
			f.Category = *input.Category
		}
		if input.Subcategories != nil {
			f.Subcategories = input.Subcategories
		}
		if input.Status != nil {
			f.Status = domain.Status(*input.Status)
		}
		if input.AllowComments != nil {
			f.AllowComments = *input.AllowComments
		}
		if input.AllowReviews != nil {
			f.AllowReviews = *input.AllowReviews
		}
		if input.AllowResenha != nil {
			f.AllowResenha = *input.AllowResenha
		}
		if input.RequestRating != nil {
			f.RequestRating = *input.RequestRating
		}
		if input.Body != nil {
			f.Body = *input.Body
		}
		if input.Attachments != nil {
			f.Attachments = input.Attachments
		}
		if input.CoverImage != nil {
			f.CoverImage = *input.CoverImage
		}

		f.RecomputeReadingTime()
		f.UpdatedAt = time.Now()

		focos[idx] = f
		updated = f
		return focos, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "focus updated", slog.String("focus_id", id.String()))

	v := view(updated, requesterID)
	return &v, nil
}
