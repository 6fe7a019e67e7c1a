package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Hashes is the subset of redis.UniversalClient the verifier uses.
type Hashes interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
}

// PresenceVerifier answers unique and exists from value indexes.
type PresenceVerifier struct {
	db     Hashes
	prefix string
}

// VerifierOption configures a PresenceVerifier.
type VerifierOption func(*PresenceVerifier)

func WithKeyPrefix(prefix string) VerifierOption {
	return func(p *PresenceVerifier) {
		p.prefix = prefix
	}
}

// NewPresenceVerifier creates a PresenceVerifier.
func NewPresenceVerifier(db Hashes, opts ...VerifierOption) *PresenceVerifier {
	p := &PresenceVerifier{db: db}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PresenceVerifier) key(table, column string) string {
	return p.prefix + table + ":" + column
}

// Count implements validator.PresenceVerifier. It returns 0 or 1: values
// are unique within an index. The id column is implied by the index.
func (p *PresenceVerifier) Count(ctx context.Context, table, column, value, excludeID, _ string) (int64, error) {
	id, err := p.db.HGet(ctx, p.key(table, column), value).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("lookup %s.%s: %w", table, column, err)
	case excludeID != "" && id == excludeID:
		return 0, nil
	}
	return 1, nil
}

// Index records that the row id holds value in table.column.
func (p *PresenceVerifier) Index(ctx context.Context, table, column, value, id string) error {
	if value == "" {
		return ErrEmptyValue
	}
	return p.db.HSet(ctx, p.key(table, column), value, id).Err()
}

// Remove drops value from the index of table.column.
func (p *PresenceVerifier) Remove(ctx context.Context, table, column, value string) error {
	return p.db.HDel(ctx, p.key(table, column), value).Err()
}
