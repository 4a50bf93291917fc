package storage

import (
	"context"

	"github.com/slok/compassq/internal/model"
)

// SnapshotRepository persists the whole board state. Loading from an empty
// repository returns an empty snapshot.
type SnapshotRepository interface {
	LoadSnapshot(ctx context.Context) (*model.Snapshot, error)
	SaveSnapshot(ctx context.Context, s model.Snapshot) error
}

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --name SnapshotRepository
