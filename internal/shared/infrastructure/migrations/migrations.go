// Package migrations creates the slot table for the SQL-backed slots.
// Migration files use {{table}} in place of the configured table name.
package migrations

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
)

//go:embed sqlite/*.up.sql postgres/*.up.sql
var migrationsFS embed.FS

type migration struct {
	file string
	sql  string
}

// upMigrations returns the dialect's migrations in file order with the
// table name quoted in.
func upMigrations(dialect, table string) ([]migration, error) {
	if strings.TrimSpace(table) == "" {
		return nil, fmt.Errorf("migration table name is required")
	}

	entries, err := migrationsFS.ReadDir(dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	quoted := pq.QuoteIdentifier(table)
	out := make([]migration, 0, len(upFiles))
	for _, file := range upFiles {
		body, err := migrationsFS.ReadFile(dialect + "/" + file)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		out = append(out, migration{
			file: file,
			sql:  strings.ReplaceAll(string(body), "{{table}}", quoted),
		})
	}
	return out, nil
}
