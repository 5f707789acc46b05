// Package migration applies the embedded schema migrations for the
// willvault-auth database. Migrations are numbered NNN_name.up.sql /
// NNN_name.down.sql pairs; applied versions are tracked in the
// schema_migrations table together with a content checksum so that
// editing an already-applied file is detected instead of silently
// ignored.
package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Migration is one up/down pair loaded from the source filesystem.
type Migration struct {
	Version  int
	Name     string
	UpSQL    string
	DownSQL  string
	Checksum string
}

// AppliedMigration is a row from the schema_migrations table.
type AppliedMigration struct {
	Version   int
	Name      string
	Checksum  string
	AppliedAt time.Time
}

// Migrator loads migrations from an fs.FS and applies them through a
// database/sql connection.
type Migrator struct {
	db     *sql.DB
	logger *slog.Logger
	source fs.FS
}

// NewMigrator creates a migrator reading migration files from source.
func NewMigrator(db *sql.DB, logger *slog.Logger, source fs.FS) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger.With("component", "migrator"),
		source: source,
	}
}

// Load reads every up/down pair from the source filesystem, sorted by
// version. A malformed filename, a duplicate version or a missing down
// file is an error: the files are embedded at build time, so any of
// these is a packaging mistake rather than a runtime condition.
func (m *Migrator) Load() ([]Migration, error) {
	var migrations []Migration
	seen := make(map[int]string)

	err := fs.WalkDir(m.source, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".up.sql") {
			return nil
		}

		version, name, err := parseFilename(path.Base(p))
		if err != nil {
			return err
		}
		if prior, ok := seen[version]; ok {
			return fmt.Errorf("duplicate migration version %d (%s and %s)", version, prior, name)
		}
		seen[version] = name

		upSQL, err := fs.ReadFile(m.source, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		downPath := strings.TrimSuffix(p, ".up.sql") + ".down.sql"
		downSQL, err := fs.ReadFile(m.source, downPath)
		if err != nil {
			return fmt.Errorf("migration %d has no down file: %w", version, err)
		}

		migrations = append(migrations, Migration{
			Version:  version,
			Name:     name,
			UpSQL:    string(upSQL),
			DownSQL:  string(downSQL),
			Checksum: checksum(upSQL),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// Applied returns the migrations recorded in schema_migrations, in
// version order.
func (m *Migrator) Applied(ctx context.Context) ([]AppliedMigration, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT version, name, checksum, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	var applied []AppliedMigration
	for rows.Next() {
		var a AppliedMigration
		if err := rows.Scan(&a.Version, &a.Name, &a.Checksum, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied = append(applied, a)
	}
	return applied, rows.Err()
}

// Up applies every pending migration in version order and returns the
// number applied. Before applying anything it verifies that no
// already-applied migration's file content has drifted from the
// recorded checksum.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}

	available, err := m.Load()
	if err != nil {
		return 0, err
	}
	applied, err := m.Applied(ctx)
	if err != nil {
		return 0, err
	}

	recorded := make(map[int]string, len(applied))
	for _, a := range applied {
		recorded[a.Version] = a.Checksum
	}

	count := 0
	for _, mig := range available {
		sum, done := recorded[mig.Version]
		if done {
			if sum != mig.Checksum {
				return count, fmt.Errorf("migration %d (%s) changed after being applied", mig.Version, mig.Name)
			}
			continue
		}

		if err := m.apply(ctx, mig); err != nil {
			return count, fmt.Errorf("failed to apply migration %d: %w", mig.Version, err)
		}
		m.logger.InfoContext(ctx, "migration applied", "version", mig.Version, "name", mig.Name)
		count++
	}
	return count, nil
}

// Down rolls back up to steps migrations, newest first, and returns
// the number rolled back. Rolling back past the first migration is not
// an error; it just stops.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	if steps < 1 {
		steps = 1
	}

	available, err := m.Load()
	if err != nil {
		return 0, err
	}
	byVersion := make(map[int]Migration, len(available))
	for _, mig := range available {
		byVersion[mig.Version] = mig
	}

	count := 0
	for count < steps {
		applied, err := m.Applied(ctx)
		if err != nil {
			return count, err
		}
		if len(applied) == 0 {
			break
		}

		last := applied[len(applied)-1]
		mig, ok := byVersion[last.Version]
		if !ok {
			return count, fmt.Errorf("applied migration %d has no source file", last.Version)
		}

		if err := m.rollback(ctx, mig); err != nil {
			return count, fmt.Errorf("failed to roll back migration %d: %w", mig.Version, err)
		}
		m.logger.InfoContext(ctx, "migration rolled back", "version", mig.Version, "name", mig.Name)
		count++
	}
	return count, nil
}

// Pending returns the loaded migrations that are not yet recorded as
// applied.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}

	available, err := m.Load()
	if err != nil {
		return nil, err
	}
	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}

	recorded := make(map[int]bool, len(applied))
	for _, a := range applied {
		recorded[a.Version] = true
	}

	var pending []Migration
	for _, mig := range available {
		if !recorded[mig.Version] {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			checksum VARCHAR(64) NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	return m.inTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, mig.UpSQL); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
			mig.Version, mig.Name, mig.Checksum)
		if err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
}

func (m *Migrator) rollback(ctx context.Context, mig Migration) error {
	return m.inTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, mig.DownSQL); err != nil {
			return fmt.Errorf("failed to execute rollback: %w", err)
		}
		_, err := tx.ExecContext(ctx,
			`DELETE FROM schema_migrations WHERE version = $1`, mig.Version)
		if err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
}

func (m *Migrator) inTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// parseFilename splits "001_create_users.up.sql" into (1,
// "create_users").
func parseFilename(base string) (int, string, error) {
	trimmed := strings.TrimSuffix(base, ".up.sql")
	prefix, name, ok := strings.Cut(trimmed, "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("invalid migration filename %q", base)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, "", fmt.Errorf("invalid migration version in %q", base)
	}
	return version, name, nil
}

func checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
