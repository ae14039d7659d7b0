// Package migrations embeds the SQL schema migrations into the binary
// so deployments are a single file with no external schema assets.
//
// Files follow the naming convention:
//
//	YYYYMMDD_HHMMSS_description.up.sql
//	YYYYMMDD_HHMMSS_description.down.sql
//
// and are applied in version order by the database package on startup.
package migrations

import (
	"embed"

	"github.com/nuttybakers/bakery-core/internal/infrastructure/database"
)

//go:embed *.sql
var files embed.FS

func init() {
	database.MigrationsFS = files
	database.MigrationsDir = "."
}
