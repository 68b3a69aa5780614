package profilecache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps one JSONB row per (owner, language) pair. Put is an
// upsert, so a finished run always replaces the previous profile whole.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store on an existing connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Put(ctx context.Context, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	query := `
		INSERT INTO profile_cache (owner_id, language, data, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id, language)
		DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`
	_, err = p.pool.Exec(ctx, query, e.OwnerID, e.Language, data, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, ownerID uuid.UUID, language string) (*Entry, error) {
	query := `SELECT data FROM profile_cache WHERE owner_id = $1 AND language = $2`

	var data []byte
	err := p.pool.QueryRow(ctx, query, ownerID, language).Scan(&data)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &e, nil
}
