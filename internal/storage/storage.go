// Package storage defines the media storage backend abstraction.
// Exactly one implementation is selected at process startup: LocalStorage
// writes under the public static directory, MinioStorage streams to any
// S3-compatible media host. Handlers only see the Storage interface.
package storage

import "context"

// Object describes one media payload to be persisted. Data holds the full
// file contents; the ingestion endpoint reads the request body into memory
// before calling Save.
type Object struct {
	Data         []byte
	OriginalName string
	ContentType  string
	MediaType    string // "image" or "video"
}

// Storage persists media bytes and returns the public location of the
// result: a path relative to the public root for local storage, an absolute
// URL for a remote host. Implementations never retry; any failure is fatal
// for the request.
type Storage interface {
	Save(ctx context.Context, obj Object) (location string, err error)
}
