package io_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/compassq/internal/model"
	storageio "github.com/slok/compassq/internal/storage/io"
)

func TestFileRepository(t *testing.T) {
	tests := map[string]struct {
		file string
	}{
		"JSON files should round trip": {file: "compassq.json"},
		"YAML files should round trip": {file: "data/compassq.yaml"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			ctx := context.Background()
			path := filepath.Join(t.TempDir(), test.file)
			repo, err := storageio.NewFileRepository(storageio.FileRepositoryConfig{Path: path})
			require.NoError(err)

			// Missing files are empty boards.
			got, err := repo.LoadSnapshot(ctx)
			require.NoError(err)
			assert.Empty(got.Tasks)
			assert.Empty(got.Archived)

			s := model.Snapshot{
				Tasks: []model.Task{{
					ID:        "a",
					Title:     "t",
					DueAt:     time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC),
					CreatedAt: time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC),
					Quadrant:  model.Q3,
				}},
				Archived: []model.Task{},
			}
			require.NoError(repo.SaveSnapshot(ctx, s))

			got, err = repo.LoadSnapshot(ctx)
			require.NoError(err)
			assert.Equal(s, *got)

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(err)
			assert.Len(entries, 1, "temporary files should be cleaned")
		})
	}
}

func TestFileRepositoryRejectsInvalidSnapshots(t *testing.T) {
	repo, err := storageio.NewFileRepository(storageio.FileRepositoryConfig{Path: filepath.Join(t.TempDir(), "a.json")})
	require.NoError(t, err)

	err = repo.SaveSnapshot(context.Background(), model.Snapshot{Tasks: []model.Task{{ID: "a"}}})
	assert.ErrorIs(t, err, model.ErrNotValid)
}
