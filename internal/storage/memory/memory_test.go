package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
	"github.com/slok/compassq/internal/storage/memory"
)

func taskFixture(id string) model.Task {
	now := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	return model.Task{
		ID:        id,
		Title:     "task " + id,
		Important: true,
		DueAt:     now.Add(48 * time.Hour),
		CreatedAt: now,
		Quadrant:  model.Q2,
	}
}

func TestRepository(t *testing.T) {
	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *memory.Repository) error
		exp     model.Snapshot
		expErr  bool
	}{
		"Loading an empty repository should return an empty snapshot": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error { return nil },
			exp:     model.Snapshot{Tasks: []model.Task{}, Archived: []model.Task{}},
		},

		"Saving a snapshot should replace the stored one": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.SaveSnapshot(ctx, model.Snapshot{Tasks: []model.Task{taskFixture("a")}})
				require.NoError(t, err)
				return repo.SaveSnapshot(ctx, model.Snapshot{Tasks: []model.Task{taskFixture("b")}})
			},
			exp: model.Snapshot{Tasks: []model.Task{taskFixture("b")}, Archived: []model.Task{}},
		},

		"Saving an invalid snapshot should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				return repo.SaveSnapshot(ctx, model.Snapshot{Tasks: []model.Task{taskFixture("a"), taskFixture("a")}})
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: log.Noop})
			require.NoError(err)

			ctx := context.Background()
			err = test.actions(ctx, t, repo)
			if test.expErr {
				assert.Error(err)
				return
			}
			require.NoError(err)

			got, err := repo.LoadSnapshot(ctx)
			require.NoError(err)
			assert.Equal(test.exp, *got)
		})
	}
}

func TestRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo, err := memory.NewRepository(memory.RepositoryConfig{Snapshot: model.Snapshot{Tasks: []model.Task{taskFixture("a")}}})
	require.NoError(t, err)

	got, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	got.Tasks[0].Title = "changed"

	got, err = repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "task a", got.Tasks[0].Title)
	assert.Equal(t, 0, repo.Saves())
}
