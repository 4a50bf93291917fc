package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/slok/compassq/internal/conventions"
	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
	storageio "github.com/slok/compassq/internal/storage/io"
)

// DefaultKey is the key the snapshot document is stored under.
const DefaultKey = conventions.RedisKey

// RepositoryConfig is the configuration for the Redis repository.
type RepositoryConfig struct {
	// URL is a redis:// URL, ignored when Client is set.
	URL    string
	Client *goredis.Client
	Key    string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.URL == "" && c.Client == nil {
		return fmt.Errorf("redis url or client is required")
	}
	if c.Key == "" {
		c.Key = DefaultKey
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Redis"})
	return nil
}

// Repository is a Redis implementation of storage.SnapshotRepository. The
// snapshot is stored as a single JSON document.
type Repository struct {
	client *goredis.Client
	key    string
	logger log.Logger
}

// NewRepository creates a new Redis repository and checks the connection.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := cfg.Client
	if client == nil {
		opts, err := goredis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("could not parse redis url: %w", err)
		}
		client = goredis.NewClient(opts)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		if cfg.Client == nil {
			_ = client.Close()
		}
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	cfg.Logger.Debugf("Redis repository initialized with key %s", cfg.Key)

	return &Repository{client: client, key: cfg.Key, logger: cfg.Logger}, nil
}

// Close closes the Redis client.
func (r *Repository) Close() error { return r.client.Close() }

// LoadSnapshot returns the stored snapshot, an empty one when the key is missing.
func (r *Repository) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return &model.Snapshot{Tasks: []model.Task{}, Archived: []model.Task{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not get snapshot: %w", err)
	}

	s, err := storageio.Decode(data, storageio.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("stored snapshot is invalid: %w", err)
	}

	return s, nil
}

// SaveSnapshot replaces the stored snapshot.
func (r *Repository) SaveSnapshot(ctx context.Context, s model.Snapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	data, err := storageio.Encode(s, storageio.FormatJSON)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("could not save snapshot: %w", err)
	}

	r.logger.Debugf("Saved snapshot in repository: %d tasks, %d archived", len(s.Tasks), len(s.Archived))
	return nil
}
