package meta

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// List returns every meta annotated for the requester.
func (s *Service) List(ctx context.Context, requesterID uuid.UUID) ([]View, error) {
	metas, err := s.metas.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("meta.List: %w", err)
	}

	views := make([]View, 0, len(metas))
	for _, m := range metas {
		views = append(views, view(m, requesterID))
	}
	return views, nil
}
