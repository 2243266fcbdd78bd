package authn

import (
	"context"
	"database/sql"
	"sync"
	"time"
)

// Blacklist records revoked refresh tokens by jti until they expire.
type Blacklist interface {
	Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// PGBlacklist implements Blacklist using Postgres.
type PGBlacklist struct {
	DB *sql.DB
}

func (b *PGBlacklist) Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	const query = `
INSERT INTO revoked_tokens (jti, user_id, expires_at, revoked_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (jti) DO NOTHING`
	if _, err := b.DB.ExecContext(ctx, query, jti, userID, expiresAt); err != nil {
		return err
	}
	// Expired entries can no longer affect verification; drop them.
	_, err := b.DB.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < now()`)
	return err
}

func (b *PGBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	const query = `SELECT 1 FROM revoked_tokens WHERE jti = $1 LIMIT 1`
	var one int
	err := b.DB.QueryRowContext(ctx, query, jti).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemoryBlacklist is an in-memory Blacklist used in dev and tests.
type MemoryBlacklist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{revoked: make(map[string]time.Time)}
}

func (b *MemoryBlacklist) Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now().UTC()
	for key, exp := range b.revoked {
		if exp.Before(now) {
			delete(b.revoked, key)
		}
	}
	b.revoked[jti] = expiresAt
	return nil
}

func (b *MemoryBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.revoked[jti]
	return ok, nil
}
