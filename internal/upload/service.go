package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/medialog/service/internal/storage"
)

// InvalidInputError reports a request rejected by validation before any side
// effects occurred.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return e.Reason }

// Input carries one upload through the ingestion sequence. Data holds the
// full file contents, already read from the request body.
type Input struct {
	Data         []byte
	OriginalName string
	ContentType  string
	Caption      string
	Type         string
}

// RecordStore is the persistence surface the service needs from the
// repository.
type RecordStore interface {
	Insert(ctx context.Context, rec *Record) error
	ListAll(ctx context.Context) ([]Record, error)
}

// Service contains the business logic for upload ingestion and listing.
type Service struct {
	repo  RecordStore
	media storage.Storage
}

// NewService creates a new upload Service backed by the given repository and
// media storage backend.
func NewService(repo RecordStore, media storage.Storage) *Service {
	return &Service{repo: repo, media: media}
}

// Ingest validates the input, persists the bytes via the active storage
// backend, inserts the metadata record, and returns it. The steps run in
// that order with no retries; bytes already written are not removed when the
// metadata insert fails afterwards.
func (s *Service) Ingest(ctx context.Context, in Input) (*Record, error) {
	caption := strings.TrimSpace(in.Caption)
	if len(in.Data) == 0 {
		return nil, &InvalidInputError{Reason: "file is empty"}
	}
	if caption == "" {
		return nil, &InvalidInputError{Reason: "caption must not be blank"}
	}
	if in.Type != TypeImage && in.Type != TypeVideo {
		return nil, &InvalidInputError{Reason: `type must be "image" or "video"`}
	}

	location, err := s.media.Save(ctx, storage.Object{
		Data:         in.Data,
		OriginalName: in.OriginalName,
		ContentType:  in.ContentType,
		MediaType:    in.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("store media: %w", err)
	}

	rec := &Record{
		File:    location,
		Caption: caption,
		Type:    in.Type,
		// The stored calendar date is pinned to UTC regardless of host clock
		// configuration.
		Date: time.Now().UTC().Format("2006-01-02"),
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist record: %w", err)
	}

	return rec, nil
}

// List returns all upload records, newest first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.ListAll(ctx)
}

// IsInvalidInput returns true when the error indicates rejected input rather
// than a storage or persistence failure.
func (s *Service) IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}
