// Package migrations embeds the schema files for each supported database.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

func sub(dir string) fs.FS {
	s, err := fs.Sub(FS, dir)
	if err != nil {
		// dir is a compile-time constant matched by the embed pattern
		panic(err)
	}
	return s
}

// SQLite returns the SQLite migrations rooted at their directory
func SQLite() fs.FS { return sub("sqlite") }

// Postgres returns the PostgreSQL migrations rooted at their directory
func Postgres() fs.FS { return sub("postgres") }
