// Package migrations embeds the SQL migration files into the binary.
//
// Importing this package (for side effects) wires the embedded filesystem
// into the database package so db.Migrate() can find the migrations:
//
//	import _ "github.com/posdesk/core/migrations"
package migrations

import (
	"embed"

	"github.com/posdesk/core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
