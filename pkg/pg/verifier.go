package pg

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PresenceVerifier counts rows for the unique and exists rules.
type PresenceVerifier struct {
	db     Querier
	tables map[string]bool
}

// VerifierOption configures a PresenceVerifier.
type VerifierOption func(*PresenceVerifier)

// WithTables restricts the tables that may be queried. Names may carry a
// schema ("billing.accounts"). No names means no restriction.
func WithTables(tables ...string) VerifierOption {
	return func(p *PresenceVerifier) {
		if len(tables) == 0 {
			return
		}
		if p.tables == nil {
			p.tables = make(map[string]bool, len(tables))
		}
		for _, t := range tables {
			p.tables[t] = true
		}
	}
}

// NewPresenceVerifier creates a PresenceVerifier.
func NewPresenceVerifier(db Querier, opts ...VerifierOption) *PresenceVerifier {
	p := &PresenceVerifier{db: db}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Count implements validator.PresenceVerifier.
func (p *PresenceVerifier) Count(ctx context.Context, table, column, value, excludeID, idColumn string) (int64, error) {
	query, args, err := p.countQuery(table, column, value, excludeID, idColumn)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := p.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s.%s: %w", table, column, err)
	}
	return n, nil
}

func (p *PresenceVerifier) countQuery(table, column, value, excludeID, idColumn string) (string, []any, error) {
	if p.tables != nil && !p.tables[table] {
		return "", nil, fmt.Errorf("%w: %s", ErrTableNotAllowed, table)
	}
	tableIdent, err := identifier(table)
	if err != nil {
		return "", nil, err
	}
	columnIdent, err := identifier(column)
	if err != nil {
		return "", nil, err
	}

	query := "SELECT count(*) FROM " + tableIdent + " WHERE " + columnIdent + " = $1"
	args := []any{value}
	if excludeID != "" {
		if idColumn == "" {
			idColumn = "id"
		}
		idIdent, err := identifier(idColumn)
		if err != nil {
			return "", nil, err
		}
		query += " AND " + idIdent + "::text <> $2"
		args = append(args, excludeID)
	}
	return query, args, nil
}

func identifier(name string) (string, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	for _, part := range parts {
		if !identifierRegex.MatchString(part) {
			return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return pgx.Identifier(parts).Sanitize(), nil
}
