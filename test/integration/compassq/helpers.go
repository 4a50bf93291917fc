package compassq

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/slok/compassq/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
	// RedisURL enables the Redis storage tests when set.
	RedisURL string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "compassq"
	}

	// If the path is already absolute, just check it exists.
	// If relative, the caller should pass an absolute path via the env var,
	// because go test changes the CWD to the test package directory.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("COMPASSQ_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("compassq binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "COMPASSQ_INTEGRATION"
		envBinary     = "COMPASSQ_INTEGRATION_BINARY"
		envRedisURL   = "COMPASSQ_INTEGRATION_REDIS_URL"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		Binary:   os.Getenv(envBinary),
		RedisURL: os.Getenv(envRedisURL),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// Storage are the storage flags of a test board.
type Storage []string

// SQLiteStorage returns the flags of a fresh SQLite board.
func SQLiteStorage(t *testing.T) Storage {
	t.Helper()
	return Storage{"--storage", "sqlite", "--db-path", filepath.Join(t.TempDir(), "test-compassq.db")}
}

// RedisStorage returns the flags of a Redis board under a key unique to the test.
func RedisStorage(t *testing.T, config Config, key string) Storage {
	t.Helper()
	if config.RedisURL == "" {
		t.Skip("Skipping redis test: COMPASSQ_INTEGRATION_REDIS_URL is not set")
	}
	return Storage{"--storage", "redis", "--redis-url", config.RedisURL, "--redis-key", key}
}

// RunCmd runs a compassq command on a board.
// It suppresses logging output for cleaner test output.
func RunCmd(ctx context.Context, config Config, storage Storage, stdin string, args ...string) (stdout, stderr []byte, err error) {
	all := append([]string{"--no-log"}, storage...)
	all = append(all, args...)
	return testutils.RunCompassqArgs(ctx, nil, config.Binary, all, stdin, true)
}

// RunAdd adds a task and prints it in JSON format.
func RunAdd(ctx context.Context, config Config, storage Storage, title string, flags ...string) (stdout, stderr []byte, err error) {
	args := append([]string{"add", title, "--format", "json"}, flags...)
	return RunCmd(ctx, config, storage, "", args...)
}

// RunMove moves a task answering the hours question with stdin.
func RunMove(ctx context.Context, config Config, storage Storage, id, quadrant, stdin string) (stdout, stderr []byte, err error) {
	return RunCmd(ctx, config, storage, stdin, "move", id, quadrant, "--format", "json")
}

// RunList lists the board in JSON format.
func RunList(ctx context.Context, config Config, storage Storage) (stdout, stderr []byte, err error) {
	return RunCmd(ctx, config, storage, "", "list", "--format", "json")
}

// RunArchiveList lists completed tasks in JSON format.
func RunArchiveList(ctx context.Context, config Config, storage Storage) (stdout, stderr []byte, err error) {
	return RunCmd(ctx, config, storage, "", "archive", "list", "--format", "json")
}
