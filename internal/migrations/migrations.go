// Package migrations holds the schema shared by the SQL storage backends.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed *.sql
var files embed.FS

// Up returns the up migrations in apply order.
func Up() ([]string, error) {
	names, err := fs.Glob(files, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("fs.Glob: %w", err)
	}
	sort.Strings(names)

	var stmts []string
	for _, name := range names {
		b, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("files.ReadFile[%s]: %w", name, err)
		}
		stmts = append(stmts, string(b))
	}

	return stmts, nil
}
