package store

import (
	"context"
	"database/sql"
	"fmt"

	"redart/internal/graph/models"
	"redart/internal/platform/postgres"
	id "redart/pkg/domain"
	"redart/pkg/platform/sentinel"
	txcontext "redart/pkg/platform/tx"
)

// PostgresStore persists edges in derivative_edges. The composite primary key
// rejects duplicates and the origin foreign key rejects unregistered origins.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, edge *models.Edge) error {
	_, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO derivative_edges (derivative_ruid, origin_ruid, linked_by, linked_at)
		VALUES ($1, $2, $3, $4)
	`, edge.Derivative.Bytes(), edge.Origin.Bytes(), edge.LinkedBy.Bytes(), edge.LinkedAt)
	switch {
	case err == nil:
		return nil
	case postgres.IsUniqueViolation(err):
		return sentinel.ErrConflict
	case postgres.IsForeignKeyViolation(err):
		return sentinel.ErrNotFound
	default:
		return fmt.Errorf("insert derivative edge: %w", err)
	}
}

func (s *PostgresStore) ListOrigins(ctx context.Context, derivative id.RUID) ([]id.RUID, error) {
	return s.list(ctx, `
		SELECT origin_ruid FROM derivative_edges
		WHERE derivative_ruid = $1
		ORDER BY seq
	`, derivative)
}

func (s *PostgresStore) ListDerivatives(ctx context.Context, origin id.RUID) ([]id.RUID, error) {
	return s.list(ctx, `
		SELECT derivative_ruid FROM derivative_edges
		WHERE origin_ruid = $1
		ORDER BY seq
	`, origin)
}

func (s *PostgresStore) list(ctx context.Context, query string, key id.RUID) ([]id.RUID, error) {
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx, query, key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("list derivative edges: %w", err)
	}
	defer rows.Close()

	out := []id.RUID{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan derivative edge: %w", err)
		}
		ruid, err := id.RUIDFromBytes(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, ruid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate derivative edges: %w", err)
	}
	return out, nil
}
