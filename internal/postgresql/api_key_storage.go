package postgresql

import (
	"context"
	"errors"
	"fmt"
	"service-fxrates/internal"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// APIKeyStorage keeps HMAC hashes of issued API keys. Raw keys never reach
// the database.
type APIKeyStorage struct {
	pool *pgxpool.Pool
}

func NewAPIKeyStorage(pool *pgxpool.Pool) *APIKeyStorage {
	return &APIKeyStorage{pool: pool}
}

func (s *APIKeyStorage) Status(ctx context.Context, keyHash string) (internal.KeyStatus, error) {
	if keyHash == "" {
		return internal.KeyUnknown, nil
	}

	var active bool
	err := s.pool.QueryRow(ctx, `
select is_active and revoked_at is null
from api_keys
where key_hash = $1;
`, keyHash).Scan(&active)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return internal.KeyUnknown, nil
	case err != nil:
		return internal.KeyUnknown, fmt.Errorf("select api key status: %w", err)
	case !active:
		return internal.KeyRevoked, nil
	}
	return internal.KeyActive, nil
}

// Register stores an active key hash. Registering a revoked hash brings it
// back.
func (s *APIKeyStorage) Register(ctx context.Context, keyHash string) error {
	if keyHash == "" {
		return fmt.Errorf("key hash is empty")
	}

	_, err := s.pool.Exec(ctx, `
insert into api_keys (key_hash, is_active)
values ($1, true)
on conflict (key_hash) do update set is_active = true, revoked_at = null;
`, keyHash)
	if err != nil {
		return fmt.Errorf("register api key: %w", err)
	}
	return nil
}

// Revoke deactivates a key. It reports false when the hash is unknown or
// already revoked.
func (s *APIKeyStorage) Revoke(ctx context.Context, keyHash string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
update api_keys
set is_active = false, revoked_at = now()
where key_hash = $1 and revoked_at is null;
`, keyHash)
	if err != nil {
		return false, fmt.Errorf("revoke api key: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
