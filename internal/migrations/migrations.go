// Package migrations applies the embedded SQL schema files.
package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// Root is the directory inside the embedded filesystem that holds one
// sub-directory per dialect.
const Root = "data/sql/migrations"

type appliedMigration struct {
	bun.BaseModel `bun:"table:landing_schema_migrations"`

	Name      string    `bun:"name,pk"`
	AppliedAt time.Time `bun:"applied_at,notnull"`
}

// DialectDir returns the migration directory for db's dialect.
func DialectDir(db *bun.DB) (string, error) {
	switch db.Dialect().Name() {
	case dialect.SQLite:
		return path.Join(Root, "sqlite"), nil
	case dialect.PG:
		return path.Join(Root, "postgres"), nil
	default:
		return "", fmt.Errorf("migrations: unsupported dialect %s", db.Dialect().Name())
	}
}

// Apply runs every pending *.up.sql file of db's dialect in name order and
// returns the names it applied.
func Apply(ctx context.Context, db *bun.DB, fsys fs.FS, now func() time.Time) ([]string, error) {
	if now == nil {
		now = time.Now
	}
	dir, err := DialectDir(db)
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("migrations: read %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".up.sql") {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)

	if _, err := db.NewCreateTable().Model((*appliedMigration)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("migrations: create tracking table: %w", err)
	}
	var done []string
	if err := db.NewSelect().Model((*appliedMigration)(nil)).Column("name").Scan(ctx, &done); err != nil {
		return nil, fmt.Errorf("migrations: list applied: %w", err)
	}

	var applied []string
	for _, name := range names {
		if slices.Contains(done, name) {
			continue
		}
		script, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return applied, err
		}
		err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, stmt := range statements(string(script)) {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.NewInsert().Model(&appliedMigration{Name: name, AppliedAt: now().UTC()}).Exec(ctx)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("migrations: apply %s: %w", name, err)
		}
		applied = append(applied, name)
	}
	return applied, nil
}

// statements splits a script on semicolons. The schema files carry no
// semicolons inside literals.
func statements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
