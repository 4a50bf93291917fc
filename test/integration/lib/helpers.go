package lib

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	sdklib "github.com/slok/compassq/pkg/lib"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	RedisURL string
}

func (c *Config) defaults() error {
	if c.RedisURL == "" {
		return fmt.Errorf("redis url is required (COMPASSQ_INTEGRATION_REDIS_URL)")
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "COMPASSQ_INTEGRATION"
		envRedisURL   = "COMPASSQ_INTEGRATION_REDIS_URL"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		RedisURL: os.Getenv(envRedisURL),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// UniqueKey generates a unique Redis key for test isolation.
func UniqueKey(prefix string) string {
	return fmt.Sprintf("compassq-it-%s-%d", prefix, time.Now().UnixNano())
}

// NewTestClient creates an SDK client on a real Redis server.
func NewTestClient(t *testing.T, config Config, key string) *sdklib.Client {
	t.Helper()

	client, err := sdklib.New(context.Background(), sdklib.Config{
		Storage:  sdklib.StorageRedis,
		RedisURL: config.RedisURL,
		RedisKey: key,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}
