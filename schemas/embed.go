// Package schemas provides the embedded SQL migrations of the review journal.
package schemas

import "embed"

// Migrations holds migrations/NNN_name.sql files, applied in file name order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
