// Package filesystem provides the read-only file system backend for filegate.
// All access goes through an os.Root, so names can never reach files outside
// the served directory, including through symlinks.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
)

// Store provides sandboxed read access to a directory.
type Store struct {
	root *os.Root
}

// Open opens dir as the root of a new Store.
func Open(dir string) (*Store, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open root: %w", err)
	}
	return NewFileStorage(root), nil
}

// NewFileStorage creates a new Store with the given root directory.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// Stat returns file information for name. Errors wrap fs.ErrNotExist when
// the file does not exist.
func (s *Store) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := s.root.Stat(filepath.FromSlash(name))
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return info, nil
}

// Open opens a file for reading. Every call returns its own handle, so
// concurrent readers never share an offset.
func (s *Store) Open(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.root.Open(filepath.FromSlash(name))
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	return f, nil
}

// Close closes the underlying root.
func (s *Store) Close() error {
	if err := s.root.Close(); err != nil {
		slog.Warn("failed to close root", "err", err)
		return err
	}
	return nil
}

// DetectContentType returns the MIME type for a file name based on its
// extension, or application/octet-stream when unknown.
func DetectContentType(name string) string {
	contentType := mime.TypeByExtension(filepath.Ext(name))

	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}
