// Package migrations carries the schema migration files for the
// document store, embedded so the binary is self-contained.
package migrations

import "embed"

// FS holds every *.up.sql migration, applied in version order.
//
//go:embed *.sql
var FS embed.FS
