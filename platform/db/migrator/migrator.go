package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

type Migrator struct {
	db   *sql.DB
	fsys fs.FS
}

// NewMigrator applies the *.sql files found at the root of fsys.
func NewMigrator(db *sql.DB, fsys fs.FS) *Migrator {
	return &Migrator{
		db:   db,
		fsys: fsys,
	}
}

func (m *Migrator) Up(ctx context.Context) error {
	const op = "migrator.Up"

	provider, err := goose.NewProvider(goose.DialectPostgres, m.db, m.fsys)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}
