// Package migrator applies the embedded SQL migrations in version order,
// recording each applied file in schema_migrations.
package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

const (
	createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
  version    text PRIMARY KEY,
  applied_at timestamptz NOT NULL DEFAULT now()
)`
	selectVersions = `SELECT version FROM schema_migrations`
	insertVersion  = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

// Migration is one SQL file.
type Migration struct {
	Version string
	SQL     string
}

// Load reads every *.sql file in fsys, sorted by file name. The version is
// the file name without its extension.
func Load(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	out := make([]Migration, 0, len(names))
	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if strings.TrimSpace(string(body)) == "" {
			return nil, fmt.Errorf("migration %s is empty", name)
		}
		out = append(out, Migration{
			Version: strings.TrimSuffix(path.Base(name), ".sql"),
			SQL:     string(body),
		})
	}
	return out, nil
}

// Pending returns the migrations whose versions are not in applied.
func Pending(all []Migration, applied map[string]bool) []Migration {
	var out []Migration
	for _, m := range all {
		if !applied[m.Version] {
			out = append(out, m)
		}
	}
	return out
}

type Migrator struct {
	db     *sql.DB
	logger zerolog.Logger
}

func New(db *sql.DB, logger zerolog.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// Up applies every pending migration, each in its own transaction, and
// returns the applied versions.
func (m *Migrator) Up(ctx context.Context, fsys fs.FS) ([]string, error) {
	all, err := Load(fsys)
	if err != nil {
		return nil, err
	}
	if _, err := m.db.ExecContext(ctx, createVersionsTable); err != nil {
		return nil, describe("create schema_migrations", err)
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, mig := range Pending(all, applied) {
		if err := m.apply(ctx, mig); err != nil {
			return done, err
		}
		m.logger.Info().Str("version", mig.Version).Msg("migration applied")
		done = append(done, mig.Version)
	}
	return done, nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, selectVersions)
	if err != nil {
		return nil, describe("load applied versions", err)
	}
	defer rows.Close()
	out := map[string]bool{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = true
	}
	return out, rows.Err()
}

func (m *Migrator) apply(ctx context.Context, mig Migration) (err error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, mig.SQL); err != nil {
		return describe("apply "+mig.Version, err)
	}
	if _, err = tx.ExecContext(ctx, insertVersion, mig.Version); err != nil {
		return describe("record "+mig.Version, err)
	}
	return tx.Commit()
}

// describe adds the PostgreSQL error code and detail when err came from the
// server.
func describe(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		msg := fmt.Sprintf("%s: %s (%s)", op, pqErr.Message, pqErr.Code)
		if pqErr.Detail != "" {
			msg += ": " + pqErr.Detail
		}
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
