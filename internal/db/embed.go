package db

import "embed"

// EmbedMigrations holds the visit-store schema migrations, compiled into the
// binary so deployment is a single file plus the SQLite database.
//
//go:embed migrations/*.sql
var EmbedMigrations embed.FS
