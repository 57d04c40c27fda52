package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"hrfx-gateway/internal/domain"
)

// SqliteCacheRepo keeps cache entries in a single-file sqlite table. Per-key
// reads and upserts are atomic, so concurrent writers just overwrite each
// other (last write wins).
type SqliteCacheRepo struct {
	db *sql.DB
}

func NewSqliteCacheRepo(db *sql.DB) *SqliteCacheRepo {
	return &SqliteCacheRepo{db: db}
}

func (r *SqliteCacheRepo) Get(key string) (domain.CacheEntry, bool, error) {
	var payload []byte
	var storedAt int64
	err := r.db.QueryRow(
		`SELECT payload, stored_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&payload, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CacheEntry{}, false, nil
	}
	if err != nil {
		return domain.CacheEntry{}, false, err
	}
	return domain.CacheEntry{
		Key:      key,
		Payload:  payload,
		StoredAt: time.Unix(storedAt, 0),
	}, true, nil
}

func (r *SqliteCacheRepo) Put(entry domain.CacheEntry) error {
	_, err := r.db.Exec(
		`INSERT INTO cache_entries (key, payload, stored_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, stored_at = excluded.stored_at`,
		entry.Key,
		entry.Payload,
		entry.StoredAt.Unix(),
	)
	return err
}

// PurgeOlderThan drops entries stored before cutoff. Called periodically;
// expiry itself is enforced by the controller, this just keeps the file from
// growing.
func (r *SqliteCacheRepo) PurgeOlderThan(cutoff time.Time) error {
	_, err := r.db.Exec(`DELETE FROM cache_entries WHERE stored_at < ?`, cutoff.Unix())
	return err
}
