package meta

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// CreateInput holds parameters for meta creation. Title is required. The
// initial status is always in-progress — computed, not settable.
type CreateInput struct {
	Title         string
	Description   string
	Category      string
	Subcategories []string
	DueDate       *string
	IsJoint       bool
	Checklist     []domain.ChecklistItem
	Participants  []uuid.UUID
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return domain.NewValidationError("title", "required")
	}
	return nil
}

// Create stores a new meta. A joint meta's participant set is the requester
// plus the supplied ids, deduplicated; a non-joint meta has exactly the
// requester.
func (s *Service) Create(ctx context.Context, requesterID uuid.UUID, input CreateInput) (*View, error) {
	input.Title = strings.TrimSpace(input.Title)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	participants := []uuid.UUID{requesterID}
	if input.IsJoint {
		participants = domain.DedupeIDs(append([]uuid.UUID{requesterID}, input.Participants...))
	}
	subcategories := input.Subcategories
	if subcategories == nil {
		subcategories = []string{}
	}

	now := time.Now()
	m := domain.Meta{
		ID:            uuid.New(),
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		Subcategories: subcategories,
		DueDate:       input.DueDate,
		IsJoint:       input.IsJoint,
		Checklist:     domain.NormalizeChecklist(input.Checklist),
		Participants:  participants,
		CreatedBy:     requesterID,
		Status:        domain.StatusInProgress,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := s.metas.Mutate(ctx, func(metas []domain.Meta) ([]domain.Meta, error) {
		return append(metas, m), nil
	})
	if err != nil {
		return nil, fmt.Errorf("meta.Create: %w", err)
	}

	s.log.InfoContext(ctx, "meta created",
		slog.String("meta_id", m.ID.String()),
		slog.Bool("joint", m.IsJoint),
	)

	v := view(m, requesterID)
	return &v, nil
}
