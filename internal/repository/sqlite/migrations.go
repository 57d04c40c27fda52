package sqlite

import (
	"database/sql"
)

const createCacheEntriesTable = `
CREATE TABLE IF NOT EXISTS cache_entries (
    key TEXT PRIMARY KEY,
    payload BLOB NOT NULL,
    stored_at INTEGER NOT NULL
);
`

func Migrate(db *sql.DB) error {
	_, err := db.Exec(createCacheEntriesTable)
	return err
}
