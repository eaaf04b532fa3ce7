// Package upload implements media upload ingestion and listing.
package upload

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Media type values accepted by the API.
const (
	TypeImage = "image"
	TypeVideo = "video"
)

// Record is the persisted metadata for one uploaded media item. File holds a
// path relative to the public root (local backend) or an absolute URL
// (remote backend). Records are immutable once created.
type Record struct {
	File    string `json:"file" example:"uploads/1756380000000000000-clip.mp4"`
	Caption string `json:"caption" example:"First win"`
	Type    string `json:"type" example:"video" enums:"image,video"`
	Date    string `json:"date" example:"2026-08-28"`
}

// Repository handles upload metadata persistence.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert stores a new upload record.
func (r *Repository) Insert(ctx context.Context, rec *Record) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO uploads (file, caption, media_type, date)
		 VALUES ($1, $2, $3, $4)`,
		rec.File, rec.Caption, rec.Type, rec.Date,
	)
	if err != nil {
		return fmt.Errorf("insert upload: %w", err)
	}
	return nil
}

// ListAll returns every upload record ordered by date descending. Same-day
// records fall back to insertion recency.
func (r *Repository) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT file, caption, media_type, to_char(date, 'YYYY-MM-DD')
		 FROM uploads
		 ORDER BY date DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	uploads := make([]Record, 0)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.File, &rec.Caption, &rec.Type, &rec.Date); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		uploads = append(uploads, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}
	return uploads, nil
}
