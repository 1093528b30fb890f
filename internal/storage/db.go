package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/melodydiary/internal/filex"
	"github.com/dmitrijs2005/melodydiary/internal/logging"
	"github.com/dmitrijs2005/melodydiary/internal/migrations"
	"github.com/dmitrijs2005/melodydiary/internal/repositories/blobs"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// RunMigrations brings the schema of db up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the SQLite file at dsn and
// migrates it. ":memory:" is accepted for tests.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases coherent and
	// serialises writers on file databases.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Open returns a Store backed by a migrated database at dsn, along with the
// database handle so the caller can close it.
func Open(ctx context.Context, dsn string, logger logging.Logger) (*Store, *sql.DB, error) {
	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return NewStore(blobs.NewSQLiteRepository(db), db, logger), db, nil
}
