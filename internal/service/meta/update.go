package meta

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// UpdateInput is a partial meta update. Nil fields are left untouched.
// DueDate distinguishes absent (keep) from provided; a provided empty string
// clears the due date. Status is never read from the client — it is always
// re-derived from the final checklist.
type UpdateInput struct {
	Title         *string
	Description   *string
	Category      *string
	Subcategories []string
	DueDate       *string
	IsJoint       *bool
	Checklist     []domain.ChecklistItem
	Participants  []uuid.UUID
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	if i.Title != nil && *i.Title == "" {
		return domain.NewValidationError("title", "must not be empty")
	}
	return nil
}

// Update merges the input into an existing meta. Only participants may
// update; the participant set is recomputed only when supplied.
func (s *Service) Update(ctx context.Context, id, requesterID uuid.UUID, input UpdateInput) (*View, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated domain.Meta

	_, err := s.metas.Mutate(ctx, func(metas []domain.Meta) ([]domain.Meta, error) {
		idx := findMeta(metas, id)
		if idx < 0 {
			return nil, fmt.Errorf("meta.Update %s: %w", id, domain.ErrNotFound)
		}
		m := metas[idx]
		if !m.HasParticipant(requesterID) {
			return nil, fmt.Errorf("meta.Update %s: %w", id, domain.ErrForbidden)
		}

		if input.Title != nil {
			m.Title = *input.Title
		}
		if input.Description != nil {
			m.Description = *input.Description
		}
		if input.Category != nil {
			m.Category = *input.Category
		}
		if input.Subcategories != nil {
			m.Subcategories = input.Subcategories
		}
		if input.DueDate != nil {
			if *input.DueDate == "" {
				m.DueDate = nil
			} else {
				m.DueDate = input.DueDate
			}
		}
		if input.IsJoint != nil {
			m.IsJoint = *input.IsJoint
		}
		if input.Checklist != nil {
			m.Checklist = domain.NormalizeChecklist(input.Checklist)
		}
		if input.Participants != nil {
			m.Participants = domain.DedupeIDs(input.Participants)
		}

		m.RecomputeStatus()
		m.UpdatedAt = time.Now()

		metas[idx] = m
		updated = m
		return metas, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "meta updated",
		slog.String("meta_id", id.String()),
		slog.String("status", string(updated.Status)),
	)

	v := view(updated, requesterID)
	return &v, nil
}
