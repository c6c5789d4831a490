// Package migrations embeds the SQL schema files applied by internal/migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
