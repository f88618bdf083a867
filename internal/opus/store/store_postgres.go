package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"redart/internal/opus/models"
	"redart/internal/platform/postgres"
	id "redart/pkg/domain"
	"redart/pkg/platform/sentinel"
	txcontext "redart/pkg/platform/tx"
)

// PostgresStore persists collections and tokens. Token ids come from the
// collection row's next_token_id counter, bumped under the row lock.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateCollection(ctx context.Context, c *models.Collection) error {
	var originRUID, originAuthor []byte
	if c.Origin != nil {
		originRUID = c.Origin.RUID.Bytes()
		originAuthor = c.Origin.Author.Bytes()
	}
	_, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO collections (id, name, symbol, metadata_cid, logo_cid, pseudonym, puid,
			royalty_fee_bps, owner, origin_ruid, origin_author, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, c.ID, c.Name, c.Symbol, c.MetadataCID, c.LogoCID, c.Pseudonym, c.PUID.Bytes(),
		int(c.RoyaltyFeeBPS), c.Owner.Bytes(), originRUID, originAuthor, c.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindCollection(ctx context.Context, collectionID uuid.UUID) (*models.Collection, error) {
	var (
		c                               models.Collection
		puid, owner, originRUID, author []byte
		fee                             int
	)
	err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, name, symbol, metadata_cid, logo_cid, pseudonym, puid,
			royalty_fee_bps, owner, origin_ruid, origin_author, created_at
		FROM collections WHERE id = $1
	`, collectionID).Scan(&c.ID, &c.Name, &c.Symbol, &c.MetadataCID, &c.LogoCID, &c.Pseudonym,
		&puid, &fee, &owner, &originRUID, &author, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find collection: %w", err)
	}
	copy(c.PUID[:], puid)
	copy(c.Owner[:], owner)
	c.RoyaltyFeeBPS = id.BPS(fee)
	if originRUID != nil {
		ruid, err := id.RUIDFromBytes(originRUID)
		if err != nil {
			return nil, err
		}
		c.Origin = &models.Origin{RUID: ruid}
		copy(c.Origin.Author[:], author)
	}
	return &c, nil
}

func (s *PostgresStore) AppendToken(ctx context.Context, t *models.Token) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		exec := txcontext.ExecutorFrom(ctx, s.db)

		var next int64
		err := exec.QueryRowContext(ctx, `
			UPDATE collections SET next_token_id = next_token_id + 1
			WHERE id = $1
			RETURNING next_token_id - 1
		`, t.CollectionID).Scan(&next)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return sentinel.ErrNotFound
			}
			return fmt.Errorf("reserve token id: %w", err)
		}

		if _, err := exec.ExecContext(ctx, `
			INSERT INTO collection_tokens (collection_id, token_id, token_uri, ruid, owner, minted_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, t.CollectionID, next, t.URI, t.RUID.Bytes(), t.Owner.Bytes(), t.MintedAt); err != nil {
			return fmt.Errorf("insert token: %w", err)
		}
		t.TokenID = uint64(next)
		return nil
	})
}

func (s *PostgresStore) FindToken(ctx context.Context, collectionID uuid.UUID, tokenID uint64) (*models.Token, error) {
	t := models.Token{CollectionID: collectionID, TokenID: tokenID}
	var ruid, owner []byte
	err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx, `
		SELECT token_uri, ruid, owner, minted_at
		FROM collection_tokens
		WHERE collection_id = $1 AND token_id = $2
	`, collectionID, int64(tokenID)).Scan(&t.URI, &ruid, &owner, &t.MintedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	copy(t.RUID[:], ruid)
	copy(t.Owner[:], owner)
	return &t, nil
}

func (s *PostgresStore) CountTokens(ctx context.Context, collectionID uuid.UUID) (uint64, error) {
	var next int64
	err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT next_token_id FROM collections WHERE id = $1`, collectionID).Scan(&next)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, sentinel.ErrNotFound
		}
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return uint64(next - 1), nil
}
