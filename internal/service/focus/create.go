package focus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storylab/backend/internal/domain"
)

// CreateInput holds parameters for focus creation. Title and Board are
// required; everything else defaults.
type CreateInput struct {
	Title         string
	Board         string
	Category      string
	Subcategories []string
	Status        string
	AllowComments bool
	AllowReviews  bool
	AllowResenha  bool
	RequestRating bool
	Body          string
	Attachments   []domain.Attachment
	CoverImage    string
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if i.Board == "" {
		errs = append(errs, domain.FieldError{Field: "board", Message: "required"})
	}
	if i.Status != "" && !domain.Status(i.Status).Valid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Create stores a new focus owned by the requester. Reading time is derived
// immediately when the initial status is completed.
func (s *Service) Create(ctx context.Context, requesterID uuid.UUID, input CreateInput) (*View, error) {
	input.Title = strings.TrimSpace(input.Title)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	status := domain.Status(input.Status)
	if status == "" {
		status = domain.StatusInProgress
	}
	subcategories := input.Subcategories
	if subcategories == nil {
		subcategories = []string{}
	}
	attachments := input.Attachments
	if attachments == nil {
		attachments = []domain.Attachment{}
	}

	now := time.Now()
	f := domain.Focus{
		ID:            uuid.New(),
		CreatedBy:     requesterID,
		Title:         input.Title,
		Board:         domain.Board(input.Board),
		Category:      input.Category,
		Subcategories: subcategories,
		Status:        status,
		AllowComments: input.AllowComments,
		AllowReviews:  input.AllowReviews,
		AllowResenha:  input.AllowResenha,
		RequestRating: input.RequestRating,
		Body:          input.Body,
		Attachments:   attachments,
		CoverImage:    input.CoverImage,
		Ratings:       []domain.Rating{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.RecomputeReadingTime()

	_, err := s.focos.Mutate(ctx, func(focos []domain.Focus) ([]domain.Focus, error) {
		return append(focos, f), nil
	})
	if err != nil {
		return nil, fmt.Errorf("focus.Create: %w", err)
	}

	s.log.InfoContext(ctx, "focus created",
		slog.String("focus_id", f.ID.String()),
		slog.String("board", string(f.Board)),
	)

	v := view(f, requesterID)
	return &v, nil
}
