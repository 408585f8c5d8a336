package migrations_test

import (
	"context"
	"os"
	"testing"

	"github.com/goliatone/go-landing/internal/migrations"
	"github.com/goliatone/go-landing/pkg/testsupport"
)

func TestApplyRunsPendingMigrationsOnce(t *testing.T) {
	db := testsupport.NewBunDB(t)

	ctx := context.Background()
	fsys := os.DirFS("../..")

	applied, err := migrations.Apply(ctx, db, fsys, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(applied) == 0 || applied[0] != "0001_landing_pages.up.sql" {
		t.Fatalf("unexpected applied set %v", applied)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO landing_pages (id, title, slug) VALUES ('a', 'Acme', 'acme')"); err != nil {
		t.Fatalf("insert into migrated table: %v", err)
	}

	again, err := migrations.Apply(ctx, db, fsys, nil)
	if err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected no pending migrations, got %v", again)
	}
}
