package export_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/compassq/internal/app/export"
	"github.com/slok/compassq/internal/model"
	storageio "github.com/slok/compassq/internal/storage/io"
)

type staticBoard model.Snapshot

func (s staticBoard) Snapshot() model.Snapshot { return model.Snapshot(s).Clone() }

func TestService_Run(t *testing.T) {
	t0 := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	board := staticBoard{
		Tasks:    []model.Task{{ID: "a", Title: "a", Important: true, DueAt: t0.Add(time.Hour), CreatedAt: t0, Quadrant: model.Q1}},
		Archived: []model.Task{},
	}

	tests := map[string]struct {
		file   string
		expErr bool
	}{
		"exporting to a json file should work": {
			file: "board.json",
		},
		"exporting to a yaml file should work": {
			file: "nested/board.yaml",
		},
		"exporting without a path should fail": {
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			assert := assert.New(t)

			svc, err := export.NewService(export.ServiceConfig{Board: board})
			require.NoError(err)

			path := ""
			if test.file != "" {
				path = filepath.Join(t.TempDir(), test.file)
			}
			res, err := svc.Run(context.TODO(), export.Request{Path: path})

			if test.expErr {
				assert.ErrorIs(err, model.ErrNotValid)
				return
			}
			require.NoError(err)
			assert.Equal(&export.Result{Path: path, Tasks: 1, Archived: 0}, res)

			data, err := os.ReadFile(path)
			require.NoError(err)
			got, err := storageio.Decode(data, storageio.FormatFromPath(path))
			require.NoError(err)
			assert.Equal(model.Snapshot(board).Tasks, got.Tasks)
		})
	}
}
