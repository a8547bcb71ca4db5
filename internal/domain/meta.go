package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChecklistItem is one entry of a meta's checklist.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Meta is a goal backed by a checklist, optionally shared (joint) between
// participants.
type Meta struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Subcategories []string        `json:"subcategories"`
	DueDate       *string         `json:"dueDate"`
	IsJoint       bool            `json:"isJoint"`
	Checklist     []ChecklistItem `json:"checklist"`
	Participants  []uuid.UUID     `json:"participants"`
	CreatedBy     uuid.UUID       `json:"createdBy"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NormalizeChecklist assigns an ID to every item that lacks one. Items keep
// their order.
func NormalizeChecklist(items []ChecklistItem) []ChecklistItem {
	out := make([]ChecklistItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		out = append(out, item)
	}
	return out
}

// ChecklistStatus derives the meta status: completed exactly when every item
// is completed. An empty checklist is vacuously completed; creation sets the
// initial status to in-progress explicitly rather than through this derivation.
func ChecklistStatus(items []ChecklistItem) Status {
	for _, item := range items {
		if !item.Completed {
			return StatusInProgress
		}
	}
	return StatusCompleted
}

// HasParticipant reports whether id may edit the meta.
func (m *Meta) HasParticipant(id uuid.UUID) bool {
	for _, p := range m.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// RecomputeStatus re-derives Status from the current checklist. The status
// is never client-settable.
func (m *Meta) RecomputeStatus() {
	m.Status = ChecklistStatus(m.Checklist)
}
