package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// wordsPerMinute is the average adult silent-reading speed used for the
// reading-time estimate.
const wordsPerMinute = 238

// Attachment is a value object embedded in a focus. Content is either inline
// text or a data-URL-encoded blob, depending on Kind/MimeType.
type Attachment struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Kind     AttachmentKind `json:"type"`
	Content  string         `json:"content"`
	MimeType string         `json:"mimeType,omitempty"`
}

// IsReadable reports whether the attachment's content counts toward the
// reading-time estimate.
func (a Attachment) IsReadable() bool {
	if a.Kind == AttachmentText {
		return true
	}
	return strings.HasPrefix(a.MimeType, "text/")
}

// Rating is one reader's rating of a focus. A rater has at most one rating
// per focus; re-rating overwrites in place.
type Rating struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Value     int       `json:"value"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatingSummary aggregates a focus's ratings for list responses.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Focus is a narrative entry on one of the boards.
type Focus struct {
	ID                 uuid.UUID    `json:"id"`
	CreatedBy          uuid.UUID    `json:"createdBy"`
	Title              string       `json:"title"`
	Board              Board        `json:"board"`
	Category           string       `json:"category"`
	Subcategories      []string     `json:"subcategories"`
	Status             Status       `json:"status"`
	AllowComments      bool         `json:"allowComments"`
	AllowReviews       bool         `json:"allowReviews"`
	AllowResenha       bool         `json:"allowResenha"`
	RequestRating      bool         `json:"requestRating"`
	Body               string       `json:"body"`
	Attachments        []Attachment `json:"attachments"`
	CoverImage         string       `json:"coverImage"`
	ReadingTimeMinutes *int         `json:"readingTimeMinutes"`
	Ratings            []Rating     `json:"ratings"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// ReadableText joins the body with the content of every readable attachment,
// newline-separated. This is the input to the reading-time estimate.
func ReadableText(body string, attachments []Attachment) string {
	parts := []string{body}
	for _, a := range attachments {
		if a.IsReadable() {
			parts = append(parts, a.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// ReadingTime estimates reading time in whole minutes: ceil(words/238) with
// a floor of one minute. Words are whitespace-delimited.
func ReadingTime(text string) int {
	words := strings.Fields(text)
	minutes := int(math.Ceil(float64(len(words)) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// RecomputeReadingTime enforces the invariant that ReadingTimeMinutes is
// present iff the focus is completed, derived from the current body and
// attachments.
func (f *Focus) RecomputeReadingTime() {
	if f.Status == StatusCompleted {
		minutes := ReadingTime(ReadableText(f.Body, f.Attachments))
		f.ReadingTimeMinutes = &minutes
		return
	}
	f.ReadingTimeMinutes = nil
}

// IsOwner reports whether id authored the focus.
func (f *Focus) IsOwner(id uuid.UUID) bool {
	return f.CreatedBy == id
}

// Summary computes the rating aggregate. An unrated focus has count 0 and
// average 0.
func (f *Focus) Summary() RatingSummary {
	if len(f.Ratings) == 0 {
		return RatingSummary{}
	}
	total := 0
	for _, r := range f.Ratings {
		total += r.Value
	}
	return RatingSummary{
		Average: float64(total) / float64(len(f.Ratings)),
		Count:   len(f.Ratings),
	}
}

// RatingBy returns a pointer to the requester's existing rating, or nil.
func (f *Focus) RatingBy(userID uuid.UUID) *Rating {
	for i := range f.Ratings {
		if f.Ratings[i].UserID == userID {
			return &f.Ratings[i]
		}
	}
	return nil
}
