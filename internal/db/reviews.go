package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/superpresidznt/jarvis/internal/record"
	"github.com/superpresidznt/jarvis/internal/review"
)

var _ review.Repository = (*SQLite)(nil)

// CreateReview stores a generated review and assigns it a new UUID.
func (s *SQLite) CreateReview(ctx context.Context, a *review.Archived) error {
	data, err := json.Marshal(a.Report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, kind, period_start, period_end, report, narrative, created_at, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		a.Report.Period.Kind,
		a.Report.Period.Start.UnixMilli(),
		a.Report.Period.End.UnixMilli(),
		string(data),
		a.Narrative,
		a.CreatedAt.UnixMilli(),
		nullMillis(a.ExportedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting review: %w", err)
	}
	a.ID = id
	return nil
}

// GetReview retrieves a review by ID, accepting any unique ID prefix.
// Returns nil, nil if no review matches.
func (s *SQLite) GetReview(ctx context.Context, id string) (*review.Archived, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, report, narrative, created_at, exported_at
		FROM reviews
		WHERE id = ? OR id LIKE ? || '%'
		ORDER BY id = ? DESC
		LIMIT 2
	`, id, id, id)
	if err != nil {
		return nil, fmt.Errorf("querying review: %w", err)
	}
	defer func() { _ = rows.Close() }()

	reviews, err := scanReviews(rows)
	if err != nil {
		return nil, err
	}
	switch {
	case len(reviews) == 0:
		return nil, nil
	case reviews[0].ID == id || len(reviews) == 1:
		return reviews[0], nil
	default:
		return nil, fmt.Errorf("review id %q is ambiguous", id)
	}
}

// ListReviews returns the most recent reviews first. A limit of 0 returns all.
func (s *SQLite) ListReviews(ctx context.Context, limit int) ([]*review.Archived, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, report, narrative, created_at, exported_at
		FROM reviews
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying reviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanReviews(rows)
}

// DeleteReview removes a review.
func (s *SQLite) DeleteReview(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("review %s: %w", id, record.ErrNotFound)
	}
	return nil
}

// MarkReviewExported records the time a review was exported.
func (s *SQLite) MarkReviewExported(ctx context.Context, id string, at time.Time) error {
	result, err := s.db.ExecContext(ctx, `UPDATE reviews SET exported_at = ? WHERE id = ?`, at.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("marking review exported: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("review %s: %w", id, record.ErrNotFound)
	}
	return nil
}

func scanReviews(rows *sql.Rows) ([]*review.Archived, error) {
	var reviews []*review.Archived
	for rows.Next() {
		var (
			a          review.Archived
			data       string
			createdAt  int64
			exportedAt sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &data, &a.Narrative, &createdAt, &exportedAt); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &a.Report); err != nil {
			return nil, fmt.Errorf("decoding review %s: %w", a.ID, err)
		}
		a.CreatedAt = time.UnixMilli(createdAt)
		a.ExportedAt = timePtr(exportedAt)
		reviews = append(reviews, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reviews: %w", err)
	}
	return reviews, nil
}
