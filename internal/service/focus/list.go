package focus

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// ListFilters narrows the focus listing. Nil fields apply no constraint;
// set fields match exactly (subcategory matches by membership).
type ListFilters struct {
	Board        *string
	Status       *string
	Category     *string
	Subcategory  *string
	AllowReviews *bool
	AllowResenha *bool
}

func (f ListFilters) matches(focus domain.Focus) bool {
	if f.Board != nil && string(focus.Board) != *f.Board {
		return false
	}
	if f.Status != nil && string(focus.Status) != *f.Status {
		return false
	}
	if f.Category != nil && focus.Category != *f.Category {
		return false
	}
	if f.Subcategory != nil && !slices.Contains(focus.Subcategories, *f.Subcategory) {
		return false
	}
	if f.AllowReviews != nil && focus.AllowReviews != *f.AllowReviews {
		return false
	}
	if f.AllowResenha != nil && focus.AllowResenha != *f.AllowResenha {
		return false
	}
	return true
}

// List returns all focuses passing the filters, annotated for the requester.
func (s *Service) List(ctx context.Context, requesterID uuid.UUID, filters ListFilters) ([]View, error) {
	focos, err := s.focos.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("focus.List: %w", err)
	}

	views := make([]View, 0, len(focos))
	for _, f := range focos {
		if filters.matches(f) {
			views = append(views, view(f, requesterID))
		}
	}
	return views, nil
}
