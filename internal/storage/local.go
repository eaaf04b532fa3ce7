package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"
)

// uploadsDir is the directory under the public root that holds uploaded
// files. It is also the URL prefix the files are served under.
const uploadsDir = "uploads"

// unsafeChars matches every character that may not appear in a stored
// filename. Replacing them defuses path separators and traversal sequences.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// LocalStorage implements Storage on the local filesystem, writing files
// under <public-root>/uploads so a static file server can expose them.
type LocalStorage struct {
	publicRoot string
}

// NewLocalStorage creates the uploads directory (including parents) if
// absent and returns a ready-to-use LocalStorage. os.MkdirAll makes the
// call idempotent across restarts.
func NewLocalStorage(publicRoot string) (*LocalStorage, error) {
	dir := filepath.Join(publicRoot, uploadsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %q: %w", dir, err)
	}
	return &LocalStorage{publicRoot: publicRoot}, nil
}

// Save writes the bytes to <public-root>/uploads/<nanos>-<sanitized-name>
// and returns the path relative to the public root ("uploads/<name>").
// The timestamp prefix keeps concurrent uploads of identically named files
// from overwriting each other. Filesystem errors propagate to the caller.
func (s *LocalStorage) Save(ctx context.Context, obj Object) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeFilename(obj.OriginalName))
	dest := filepath.Join(s.publicRoot, uploadsDir, name)
	if err := os.WriteFile(dest, obj.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %q: %w", dest, err)
	}
	return path.Join(uploadsDir, name), nil
}

// Dir returns the filesystem directory holding uploaded files, for mounting
// a static file server.
func (s *LocalStorage) Dir() string {
	return filepath.Join(s.publicRoot, uploadsDir)
}

// sanitizeFilename replaces every character outside [A-Za-z0-9.-] with an
// underscore.
func sanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}
