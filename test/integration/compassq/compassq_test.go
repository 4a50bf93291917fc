package compassq_test

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intcompassq "github.com/slok/compassq/test/integration/compassq"
)

// taskOutput matches the JSON output of a single task.
type taskOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Important bool   `json:"important"`
	Quadrant  string `json:"quadrant"`
}

// boardOutput matches the JSON output of `compassq list --format json`.
type boardOutput struct {
	Quadrants []struct {
		ID    string       `json:"id"`
		Count int          `json:"count"`
		Tasks []taskOutput `json:"tasks"`
	} `json:"quadrants"`
}

func parseTask(t *testing.T, data []byte) taskOutput {
	t.Helper()
	var task taskOutput
	require.NoError(t, json.Unmarshal(data, &task))
	return task
}

func parseBoard(t *testing.T, data []byte) map[string][]taskOutput {
	t.Helper()
	var b boardOutput
	require.NoError(t, json.Unmarshal(data, &b))
	res := map[string][]taskOutput{}
	for _, q := range b.Quadrants {
		res[q.ID] = q.Tasks
	}
	return res
}

// uniqueKey generates a unique Redis key for test isolation.
func uniqueKey(prefix string) string {
	return fmt.Sprintf("compassq-it-%s-%d", prefix, time.Now().UnixNano())
}

func testTaskLifecycle(t *testing.T, config intcompassq.Config, storage intcompassq.Storage) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// 1. Add a task that is not urgent.
	stdout, stderr, err := intcompassq.RunAdd(ctx, config, storage, "write release notes", "--important", "--hours", "48")
	require.NoError(t, err, "add failed: stdout=%s stderr=%s", stdout, stderr)
	task := parseTask(t, stdout)
	assert.Equal(t, "Q2", task.Quadrant)

	// 2. List should show it in Q2.
	stdout, stderr, err = intcompassq.RunList(ctx, config, storage)
	require.NoError(t, err, "list failed: stdout=%s stderr=%s", stdout, stderr)
	board := parseBoard(t, stdout)
	require.Len(t, board["Q2"], 1)
	assert.Equal(t, task.ID, board["Q2"][0].ID)

	// 3. Move into Q3 answering the hours question on stdin.
	stdout, stderr, err = intcompassq.RunMove(ctx, config, storage, task.ID, "Q3", "4\n")
	require.NoError(t, err, "move failed: stdout=%s stderr=%s", stdout, stderr)
	moved := parseTask(t, stdout)
	assert.Equal(t, "Q3", moved.Quadrant)
	assert.False(t, moved.Important)

	// 4. Complete.
	stdout, stderr, err = intcompassq.RunCmd(ctx, config, storage, "", "done", task.ID)
	require.NoError(t, err, "done failed: stdout=%s stderr=%s", stdout, stderr)
	assert.Contains(t, string(stdout), "Completed task")

	stdout, _, err = intcompassq.RunArchiveList(ctx, config, storage)
	require.NoError(t, err)
	var archived []taskOutput
	require.NoError(t, json.Unmarshal(stdout, &archived))
	require.Len(t, archived, 1)
	assert.Equal(t, task.ID, archived[0].ID)

	// 5. Restore and remove.
	_, stderr, err = intcompassq.RunCmd(ctx, config, storage, "", "archive", "restore", task.ID)
	require.NoError(t, err, "restore failed: stderr=%s", stderr)
	_, stderr, err = intcompassq.RunCmd(ctx, config, storage, "", "rm", task.ID)
	require.NoError(t, err, "rm failed: stderr=%s", stderr)

	stdout, _, err = intcompassq.RunList(ctx, config, storage)
	require.NoError(t, err)
	for q, tasks := range parseBoard(t, stdout) {
		assert.Empty(t, tasks, "quadrant %s should be empty", q)
	}
}

func TestTaskLifecycleSQLite(t *testing.T) {
	config := intcompassq.NewConfig(t)
	testTaskLifecycle(t, config, intcompassq.SQLiteStorage(t))
}

func TestTaskLifecycleRedis(t *testing.T) {
	config := intcompassq.NewConfig(t)
	testTaskLifecycle(t, config, intcompassq.RedisStorage(t, config, uniqueKey("lifecycle")))
}

func TestCapacityRejection(t *testing.T) {
	config := intcompassq.NewConfig(t)
	storage := intcompassq.SQLiteStorage(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for i := range 10 {
		_, stderr, err := intcompassq.RunAdd(ctx, config, storage, fmt.Sprintf("urgent %d", i), "--urgent", "--important", "--hours", "2")
		require.NoError(t, err, "add failed: stderr=%s", stderr)
	}

	_, stderr, err := intcompassq.RunAdd(ctx, config, storage, "one more", "--urgent", "--important", "--hours", "2")
	require.Error(t, err)
	assert.Contains(t, string(stderr), "Quadrant limit reached (10)")
}

func TestExportImportBetweenStorages(t *testing.T) {
	config := intcompassq.NewConfig(t)
	src := intcompassq.SQLiteStorage(t)
	dst := intcompassq.SQLiteStorage(t)
	exportPath := filepath.Join(t.TempDir(), "board.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	stdout, _, err := intcompassq.RunAdd(ctx, config, src, "plan sprint", "--important")
	require.NoError(t, err)
	task := parseTask(t, stdout)

	_, stderr, err := intcompassq.RunCmd(ctx, config, src, "", "export", exportPath)
	require.NoError(t, err, "export failed: stderr=%s", stderr)
	_, stderr, err = intcompassq.RunCmd(ctx, config, dst, "", "import", exportPath)
	require.NoError(t, err, "import failed: stderr=%s", stderr)

	stdout, _, err = intcompassq.RunList(ctx, config, dst)
	require.NoError(t, err)
	board := parseBoard(t, stdout)
	require.Len(t, board["Q2"], 1)
	assert.Equal(t, task.ID, board["Q2"][0].ID)
}
