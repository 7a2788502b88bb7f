// Package migrations holds the SQL schema migrations, embedded so the
// binaries can apply them without a migrations directory on disk.
package migrations

import "embed"

// Files contains every *.up.sql and *.down.sql migration
//
//go:embed *.sql
var Files embed.FS
