// Package migrations embeds the SQLite schema migrations.
package migrations

import "embed"

// FS holds every *.sql migration, applied in file name order
//
//go:embed *.sql
var FS embed.FS
