package landing

import (
	"embed"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files, one directory per
// dialect (sqlite, postgres).
func GetMigrationsFS() embed.FS {
	return migrationsFS
}
