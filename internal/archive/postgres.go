package archive

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// openPostgres opens a PostgreSQL connection from a full DSN, the optional
// tier for deployments that want a shared, queryable report history
// instead of a per-process SQLite file.
func openPostgres(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres archive: dsn is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres archive: %w", err)
	}
	return db, nil
}
