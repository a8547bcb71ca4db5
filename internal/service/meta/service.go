// Package meta implements the goal (meta) service: checklist-backed goals
// with derived completion status and optional joint participation.
package meta

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// metaStore defines the metas collection interface needed by the service.
type metaStore interface {
	Load(ctx context.Context) ([]domain.Meta, error)
	Mutate(ctx context.Context, fn func([]domain.Meta) ([]domain.Meta, error)) ([]domain.Meta, error)
}

// Service implements meta operations.
type Service struct {
	log   *slog.Logger
	metas metaStore
}

// NewService creates a new meta service instance.
func NewService(logger *slog.Logger, metas metaStore) *Service {
	return &Service{
		log:   logger.With("service", "meta"),
		metas: metas,
	}
}

// View is a meta annotated for a specific requester.
type View struct {
	domain.Meta
	CanEdit bool
}

func view(m domain.Meta, requesterID uuid.UUID) View {
	return View{
		Meta:    m,
		CanEdit: m.HasParticipant(requesterID),
	}
}

func findMeta(metas []domain.Meta, id uuid.UUID) int {
	for i := range metas {
		if metas[i].ID == id {
			return i
		}
	}
	return -1
}
