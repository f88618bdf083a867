package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"redart/internal/copyright/models"
	"redart/internal/platform/postgres"
	id "redart/pkg/domain"
	"redart/pkg/platform/sentinel"
	txcontext "redart/pkg/platform/tx"
)

// PostgresStore persists registrations in the registrations and
// registration_works tables. The RUID primary key arbitrates concurrent claims.
//
// Sequence numbers are taken from the ledger_counters row, whose lock is held
// until the registering transaction ends. A registration that commits later
// therefore always carries a higher sequence, which the derivation graph's
// ordering rule relies on.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts the registration and its content identifiers in one
// transaction, joining the caller's transaction when present.
func (s *PostgresStore) Create(ctx context.Context, reg *models.Registration) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		exec := txcontext.ExecutorFrom(ctx, s.db)

		var seq int64
		err := exec.QueryRowContext(ctx, `
			UPDATE ledger_counters SET value = value + 1
			WHERE name = 'registrations'
			RETURNING value
		`).Scan(&seq)
		if err != nil {
			return fmt.Errorf("next registration sequence: %w", err)
		}

		_, err = exec.ExecContext(ctx, `
			INSERT INTO registrations (ruid, puid, opus_type, registered_by, registered_at, seq)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, reg.RUID.Bytes(), reg.PUID.Bytes(), reg.OpusType, reg.RegisteredBy.Bytes(), reg.RegisteredAt, seq)
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return sentinel.ErrAlreadyUsed
			}
			return fmt.Errorf("insert registration: %w", err)
		}

		for position, wuid := range reg.WUID {
			if _, err := exec.ExecContext(ctx, `
				INSERT INTO registration_works (ruid, position, wuid)
				VALUES ($1, $2, $3)
			`, reg.RUID.Bytes(), position, wuid.Bytes()); err != nil {
				return fmt.Errorf("insert registration work: %w", err)
			}
		}
		reg.Sequence = uint64(seq)
		return nil
	})
}

func (s *PostgresStore) FindByRUID(ctx context.Context, ruid id.RUID) (*models.Registration, error) {
	exec := txcontext.ExecutorFrom(ctx, s.db)

	var (
		reg          models.Registration
		puid, author []byte
		seq          int64
	)
	err := exec.QueryRowContext(ctx, `
		SELECT puid, opus_type, registered_by, registered_at, seq
		FROM registrations
		WHERE ruid = $1
	`, ruid.Bytes()).Scan(&puid, &reg.OpusType, &author, &reg.RegisteredAt, &seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	reg.RUID = ruid
	copy(reg.PUID[:], puid)
	copy(reg.RegisteredBy[:], author)
	reg.Sequence = uint64(seq)

	rows, err := exec.QueryContext(ctx, `
		SELECT wuid FROM registration_works WHERE ruid = $1 ORDER BY position
	`, ruid.Bytes())
	if err != nil {
		return nil, fmt.Errorf("find registration works: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan registration work: %w", err)
		}
		var w id.WUID
		copy(w[:], raw)
		reg.WUID = append(reg.WUID, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registration works: %w", err)
	}
	return &reg, nil
}

func (s *PostgresStore) Exists(ctx context.Context, ruid id.RUID) (bool, error) {
	var exists bool
	err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE ruid = $1)`, ruid.Bytes()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return exists, nil
}
