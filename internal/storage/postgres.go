package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"
)

// Postgres stores client values in the client_storage table.
// It uses database/sql with parameterized queries only.
type Postgres struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewPostgres creates a PostgreSQL-backed store. A non-positive ttl keeps rows for a century.
func NewPostgres(db *sql.DB, ttl time.Duration) *Postgres {
	if ttl <= 0 {
		ttl = 100 * 365 * 24 * time.Hour
	}
	return &Postgres{db: db, ttl: ttl, now: time.Now}
}

var _ Storage = (*Postgres)(nil)

// Load returns the client's unexpired rows.
func (p *Postgres) Load(ctx context.Context, clientID string) (map[string]string, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}
	const q = `
		SELECT key, value
		FROM client_storage
		WHERE client_id = $1 AND expires_at > now()
	`
	rows, err := p.db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save upserts every value inside one transaction.
func (p *Postgres) Save(ctx context.Context, clientID string, values map[string]string) error {
	if clientID == "" {
		return ErrClientIDRequired
	}
	if len(values) == 0 {
		return nil
	}
	const q = `
		INSERT INTO client_storage (client_id, key, value, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (client_id, key)
		DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = now()
	`
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	expiresAt := p.now().Add(p.ttl).UTC()

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, q, clientID, k, values[k], expiresAt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Remove deletes the given keys inside one transaction.
func (p *Postgres) Remove(ctx context.Context, clientID string, keys ...string) error {
	if clientID == "" {
		return ErrClientIDRequired
	}
	if len(keys) == 0 {
		return nil
	}
	const q = `DELETE FROM client_storage WHERE client_id = $1 AND key = $2`

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, q, clientID, k); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Purge deletes expired rows and returns how many were removed.
func (p *Postgres) Purge(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM client_storage WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
