package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"redart/internal/platform/postgres"
	"redart/internal/royalty/models"
	id "redart/pkg/domain"
	"redart/pkg/platform/sentinel"
	txcontext "redart/pkg/platform/tx"
)

// PostgresStore persists chains in royalty_chains and royalty_items.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, chain *models.Chain) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		exec := txcontext.ExecutorFrom(ctx, s.db)

		_, err := exec.ExecContext(ctx, `
			INSERT INTO royalty_chains (ruid, registered_by, registered_at)
			VALUES ($1, $2, $3)
		`, chain.RUID.Bytes(), chain.RegisteredBy.Bytes(), chain.RegisteredAt)
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return sentinel.ErrAlreadyUsed
			}
			return fmt.Errorf("insert royalty chain: %w", err)
		}

		for position, item := range chain.Items {
			var source []byte
			if item.Source != nil {
				source = item.Source.Bytes()
			}
			if _, err := exec.ExecContext(ctx, `
				INSERT INTO royalty_items (ruid, position, receiver, bps, source_ruid)
				VALUES ($1, $2, $3, $4, $5)
			`, chain.RUID.Bytes(), position, item.Receiver.Bytes(), int(item.BPS), source); err != nil {
				return fmt.Errorf("insert royalty item: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) FindByRUID(ctx context.Context, ruid id.RUID) (*models.Chain, error) {
	exec := txcontext.ExecutorFrom(ctx, s.db)

	chain := models.Chain{RUID: ruid}
	var registeredBy []byte
	err := exec.QueryRowContext(ctx, `
		SELECT registered_by, registered_at FROM royalty_chains WHERE ruid = $1
	`, ruid.Bytes()).Scan(&registeredBy, &chain.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find royalty chain: %w", err)
	}
	copy(chain.RegisteredBy[:], registeredBy)

	rows, err := exec.QueryContext(ctx, `
		SELECT receiver, bps, source_ruid
		FROM royalty_items
		WHERE ruid = $1
		ORDER BY position
	`, ruid.Bytes())
	if err != nil {
		return nil, fmt.Errorf("find royalty items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			receiver, source []byte
			bps              int
			item             models.Item
		)
		if err := rows.Scan(&receiver, &bps, &source); err != nil {
			return nil, fmt.Errorf("scan royalty item: %w", err)
		}
		copy(item.Receiver[:], receiver)
		item.BPS = id.BPS(bps)
		if source != nil {
			src, err := id.RUIDFromBytes(source)
			if err != nil {
				return nil, err
			}
			item.Source = &src
		}
		chain.Items = append(chain.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate royalty items: %w", err)
	}
	return &chain, nil
}

func (s *PostgresStore) Exists(ctx context.Context, ruid id.RUID) (bool, error) {
	var exists bool
	err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM royalty_chains WHERE ruid = $1)`, ruid.Bytes()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check royalty chain: %w", err)
	}
	return exists, nil
}
