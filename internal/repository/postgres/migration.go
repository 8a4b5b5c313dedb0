package postgres

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed migrations/schema.sql
var schema string

// RunMigrations creates the analyses table if it does not exist yet.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema.sql: %w", err)
	}
	return nil
}
