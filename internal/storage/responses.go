package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CachedResponse is a raw upstream JSON body together with the pagination
// headers that accompanied it.
type CachedResponse struct {
	Key        string
	Body       []byte
	Total      *int
	TotalPages *int
	StoredAt   time.Time
}

// GetResponse returns the cached response for key if it was stored less than
// maxAge ago. Missing and expired entries both yield ErrNotFound.
func (s *Store) GetResponse(ctx context.Context, key string, maxAge time.Duration) (*CachedResponse, error) {
	var (
		resp       CachedResponse
		total      sql.NullInt64
		totalPages sql.NullInt64
		storedAt   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT cache_key, body, total, total_pages, stored_at
		 FROM response_cache WHERE cache_key = ?`, key,
	).Scan(&resp.Key, &resp.Body, &total, &totalPages, &storedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting cached response: %w", err)
	}

	resp.StoredAt = parseTime(storedAt)
	if resp.StoredAt.IsZero() || s.now().Sub(resp.StoredAt) >= maxAge {
		return nil, ErrNotFound
	}
	resp.Total = nullIntPtr(total)
	resp.TotalPages = nullIntPtr(totalPages)
	return &resp, nil
}

// PutResponse inserts or replaces the cached response for resp.Key. The
// stored_at timestamp is always set to the current time.
func (s *Store) PutResponse(ctx context.Context, resp *CachedResponse) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO response_cache (cache_key, body, total, total_pages, stored_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
			body        = excluded.body,
			total       = excluded.total,
			total_pages = excluded.total_pages,
			stored_at   = excluded.stored_at`,
		resp.Key, resp.Body, intPtrArg(resp.Total), intPtrArg(resp.TotalPages), formatTime(s.now()),
	)
	if err != nil {
		return fmt.Errorf("storing cached response: %w", err)
	}
	return nil
}

// PurgeStale deletes every entry older than maxAge and returns how many rows
// were removed.
func (s *Store) PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := formatTime(s.now().Add(-maxAge))
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM response_cache WHERE stored_at <= ?`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("purging stale responses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged responses: %w", err)
	}
	return n, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func intPtrArg(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
