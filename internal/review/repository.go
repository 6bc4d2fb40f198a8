package review

import (
	"context"
	"time"
)

// Archived is a generated review kept for later reading and export.
type Archived struct {
	ID         string
	Report     Report
	Narrative  string // optional coaching text
	CreatedAt  time.Time
	ExportedAt *time.Time
}

// Repository defines the storage interface for archived reviews.
type Repository interface {
	// CreateReview stores a review and assigns its ID.
	CreateReview(ctx context.Context, a *Archived) error

	// GetReview retrieves a review by ID. Returns nil, nil if it does not exist.
	GetReview(ctx context.Context, id string) (*Archived, error)

	// ListReviews returns the most recent reviews first, at most limit (0 means all).
	ListReviews(ctx context.Context, limit int) ([]*Archived, error)

	// DeleteReview removes a review.
	DeleteReview(ctx context.Context, id string) error

	// MarkReviewExported records when a review was last exported.
	MarkReviewExported(ctx context.Context, id string, at time.Time) error
}
