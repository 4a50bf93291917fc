package io

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/slok/compassq/internal/model"
)

// SnapshotFSLoader loads snapshot documents from a filesystem, the format is
// taken from the file extension.
type SnapshotFSLoader struct {
	fs fs.FS
}

// NewSnapshotFSLoader creates a new snapshot loader.
func NewSnapshotFSLoader(filesystem fs.FS) *SnapshotFSLoader {
	return &SnapshotFSLoader{fs: filesystem}
}

// LoadSnapshot loads a snapshot document and returns a validated domain model.
func (l *SnapshotFSLoader) LoadSnapshot(ctx context.Context, path string) (*model.Snapshot, error) {
	data, err := fs.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	s, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return s, nil
}
