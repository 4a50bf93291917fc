package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/compassq/internal/log"
	"github.com/slok/compassq/internal/model"
	"github.com/slok/compassq/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.SnapshotRepository. Active
// and archived tasks share a table, their order is kept in a position column.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// LoadSnapshot reads every task and splits them in active and archived.
func (r *Repository) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	query := `
		SELECT
			id, title, important,
			due_at, created_at, quadrant,
			completed_at, archived
		FROM tasks
		ORDER BY archived ASC, position ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	s := model.Snapshot{Tasks: []model.Task{}, Archived: []model.Task{}}
	for rows.Next() {
		t, archived, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		if archived {
			s.Archived = append(s.Archived, t)
		} else {
			s.Tasks = append(s.Tasks, t)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("stored snapshot is invalid: %w", err)
	}

	return &s, nil
}

// SaveSnapshot replaces every stored task in a single transaction.
func (r *Repository) SaveSnapshot(ctx context.Context, s model.Snapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // Rollback is safe to call after Commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("could not delete tasks: %w", err)
	}

	insertQuery := `
		INSERT INTO tasks (
			id, title, important,
			due_at, created_at, quadrant,
			completed_at, archived, position
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer stmt.Close()

	insert := func(tasks []model.Task, archived bool) error {
		for i, t := range tasks {
			var completedAt *int64
			if t.CompletedAt != nil {
				ms := t.CompletedAt.UnixMilli()
				completedAt = &ms
			}

			_, err := stmt.ExecContext(ctx,
				t.ID,
				t.Title,
				t.Important,
				t.DueAt.UnixMilli(),
				t.CreatedAt.UnixMilli(),
				string(t.Quadrant),
				completedAt,
				archived,
				i,
			)
			if err != nil {
				return fmt.Errorf("could not insert task %s: %w", t.ID, err)
			}
		}
		return nil
	}
	if err := insert(s.Tasks, false); err != nil {
		return err
	}
	if err := insert(s.Archived, true); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Saved snapshot in repository: %d tasks, %d archived", len(s.Tasks), len(s.Archived))
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanRow(s scanner) (model.Task, bool, error) {
	var t model.Task
	var quadrant string
	var dueAt, createdAt int64
	var completedAt sql.NullInt64
	var archived bool

	err := s.Scan(
		&t.ID,
		&t.Title,
		&t.Important,
		&dueAt,
		&createdAt,
		&quadrant,
		&completedAt,
		&archived,
	)
	if err != nil {
		return model.Task{}, false, err
	}

	t.Quadrant = model.Quadrant(quadrant)
	t.DueAt = timeFromUnixMilli(dueAt)
	t.CreatedAt = timeFromUnixMilli(createdAt)
	if completedAt.Valid {
		c := timeFromUnixMilli(completedAt.Int64)
		t.CompletedAt = &c
	}

	return t, archived, nil
}

func timeFromUnixMilli(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
