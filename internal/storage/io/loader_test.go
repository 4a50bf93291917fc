package io

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/compassq/internal/model"
)

func TestSnapshotFSLoaderLoadSnapshot(t *testing.T) {
	completedAt := time.UnixMilli(1769774400000).UTC()

	tests := map[string]struct {
		fs     fstest.MapFS
		path   string
		exp    *model.Snapshot
		expErr bool
	}{
		"A JSON document should load successfully": {
			fs: fstest.MapFS{
				"compassq.json": &fstest.MapFile{Data: []byte(`{
  "tasks": [
    {"id": "a", "title": "Write report", "important": true, "dueAt": 1769860800000, "createdAt": 1769770800000, "quadrant": "Q2"}
  ],
  "archived": [
    {"id": "b", "title": "Call bank", "important": false, "dueAt": 1769778000000, "createdAt": 1769770800000, "quadrant": "Q3", "completedAt": 1769774400000}
  ]
}`)},
			},
			path: "compassq.json",
			exp: &model.Snapshot{
				Tasks: []model.Task{{
					ID:        "a",
					Title:     "Write report",
					Important: true,
					DueAt:     time.UnixMilli(1769860800000).UTC(),
					CreatedAt: time.UnixMilli(1769770800000).UTC(),
					Quadrant:  model.Q2,
				}},
				Archived: []model.Task{{
					ID:          "b",
					Title:       "Call bank",
					DueAt:       time.UnixMilli(1769778000000).UTC(),
					CreatedAt:   time.UnixMilli(1769770800000).UTC(),
					Quadrant:    model.Q3,
					CompletedAt: &completedAt,
				}},
			},
		},

		"A YAML document should load successfully": {
			fs: fstest.MapFS{
				"compassq.yaml": &fstest.MapFile{Data: []byte(`tasks:
  - id: a
    title: Write report
    important: true
    dueAt: 1769860800000
    createdAt: 1769770800000
    quadrant: Q2
`)},
			},
			path: "compassq.yaml",
			exp: &model.Snapshot{
				Tasks: []model.Task{{
					ID:        "a",
					Title:     "Write report",
					Important: true,
					DueAt:     time.UnixMilli(1769860800000).UTC(),
					CreatedAt: time.UnixMilli(1769770800000).UTC(),
					Quadrant:  model.Q2,
				}},
				Archived: []model.Task{},
			},
		},

		"An empty document should load an empty snapshot": {
			fs:   fstest.MapFS{"compassq.json": &fstest.MapFile{Data: []byte(`{}`)}},
			path: "compassq.json",
			exp:  &model.Snapshot{Tasks: []model.Task{}, Archived: []model.Task{}},
		},

		"A missing file should fail": {
			fs:     fstest.MapFS{},
			path:   "compassq.json",
			expErr: true,
		},

		"A malformed document should fail": {
			fs:     fstest.MapFS{"compassq.json": &fstest.MapFile{Data: []byte(`{"tasks": [`)}},
			path:   "compassq.json",
			expErr: true,
		},

		"An unknown quadrant should fail": {
			fs: fstest.MapFS{
				"compassq.json": &fstest.MapFile{Data: []byte(`{"tasks": [{"id": "a", "title": "t", "dueAt": 1, "createdAt": 1, "quadrant": "Q7"}]}`)},
			},
			path:   "compassq.json",
			expErr: true,
		},

		"An active task with a completion time should fail": {
			fs: fstest.MapFS{
				"compassq.json": &fstest.MapFile{Data: []byte(`{"tasks": [{"id": "a", "title": "t", "dueAt": 1, "createdAt": 1, "quadrant": "Q1", "completedAt": 1}]}`)},
			},
			path:   "compassq.json",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			l := NewSnapshotFSLoader(test.fs)
			got, err := l.LoadSnapshot(context.Background(), test.path)

			if test.expErr {
				assert.Error(err)
				return
			}
			require.NoError(err)
			assert.Equal(test.exp, got)
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	completedAt := time.Date(2026, 1, 30, 11, 0, 0, 0, time.UTC)
	s := model.Snapshot{
		Tasks: []model.Task{{
			ID:        "a",
			Title:     "t",
			Important: true,
			DueAt:     time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC),
			Quadrant:  model.Q1,
		}},
		Archived: []model.Task{{
			ID:          "b",
			Title:       "t2",
			DueAt:       time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC),
			CreatedAt:   time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC),
			Quadrant:    model.Q4,
			CompletedAt: &completedAt,
		}},
	}

	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(s, f)
			require.NoError(t, err)

			got, err := Decode(data, f)
			require.NoError(t, err)
			assert.Equal(t, s, *got)
		})
	}
}

func TestEncodeJSONShape(t *testing.T) {
	s := model.Snapshot{Tasks: []model.Task{{
		ID:        "a",
		Title:     "t",
		DueAt:     time.UnixMilli(2000).UTC(),
		CreatedAt: time.UnixMilli(1000).UTC(),
		Quadrant:  model.Q3,
	}}}

	data, err := Encode(s, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{
  "tasks": [{"id": "a", "title": "t", "important": false, "dueAt": 2000, "createdAt": 1000, "quadrant": "Q3"}],
  "archived": []
}`, string(data))
}

func TestFormatFromPath(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(FormatYAML, FormatFromPath("/tmp/a.yaml"))
	assert.Equal(FormatYAML, FormatFromPath("a.YML"))
	assert.Equal(FormatJSON, FormatFromPath("a.json"))
	assert.Equal(FormatJSON, FormatFromPath("a"))
}
