package domain

// Status is the lifecycle state shared by focuses and metas.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusInProgress || s == StatusCompleted
}

// Board partitions focuses by owner/context. The set is fixed: the app is
// built for two writers sharing one workspace.
type Board string

const (
	BoardDaniel Board = "daniel"
	BoardLauxen Board = "lauxen"
)

// Boards returns the fixed board set.
func Boards() []Board {
	return []Board{BoardDaniel, BoardLauxen}
}

// AttachmentKind classifies focus attachments.
type AttachmentKind string

const (
	AttachmentText     AttachmentKind = "text"
	AttachmentImage    AttachmentKind = "image"
	AttachmentDocument AttachmentKind = "document"
)
