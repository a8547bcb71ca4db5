// Package focus implements the focus document service: filtered listing,
// creation, owner-only updates, and reader ratings, with the derived
// reading-time and rating aggregates.
package focus

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// focusStore defines the focos collection interface needed by the service.
type focusStore interface {
	Load(ctx context.Context) ([]domain.Focus, error)
	Mutate(ctx context.Context, fn func([]domain.Focus) ([]domain.Focus, error)) ([]domain.Focus, error)
}

// Service implements focus operations.
type Service struct {
	log   *slog.Logger
	focos focusStore
}

// NewService creates a new focus service instance.
func NewService(logger *slog.Logger, focos focusStore) *Service {
	return &Service{
		log:   logger.With("service", "focus"),
		focos: focos,
	}
}

// View is a focus annotated for a specific requester. The raw rating list is
// stripped at the API boundary; responses carry only the summary.
type View struct {
	domain.Focus
	CanEdit bool
	Summary domain.RatingSummary
}

func view(f domain.Focus, requesterID uuid.UUID) View {
	return View{
		Focus:   f,
		CanEdit: f.IsOwner(requesterID),
		Summary: f.Summary(),
	}
}

func findFocus(focos []domain.Focus, id uuid.UUID) int {
	for i := range focos {
		if focos[i].ID == id {
			return i
		}
	}
	return -1
}
