// Package assets embeds files the server ships inside its binary.
package assets

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var FS embed.FS

// Migrations lists the embedded SQL migration files in apply order.
func Migrations() ([]string, error) {
	names, err := fs.Glob(FS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// ReadMigration returns the contents of one migration file.
func ReadMigration(name string) (string, error) {
	b, err := FS.ReadFile(name)
	return string(b), err
}
