// Package outbox implements events.Store with the transactional outbox
// pattern: events are written in the same Postgres transaction as the ledger
// mutation and published to Kafka later by the relay.
package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"redart/internal/events"
	txcontext "redart/pkg/platform/tx"
)

// Entry is one unpublished outbox row.
type Entry struct {
	ID          uuid.UUID
	Type        events.Type
	AggregateID string
	Payload     []byte
	CreatedAt   time.Time
}

// Message converts the row into a broker message.
func (e Entry) Message() events.Message {
	return events.Message{ID: e.ID, Key: e.AggregateID, Type: e.Type, Payload: e.Payload}
}

// Store writes to and reads from the event_outbox table.
type Store struct {
	db *sql.DB
}

// New creates a new outbox store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts the event, joining the transaction in ctx when present.
func (s *Store) Append(ctx context.Context, event events.Event) error {
	msg, err := events.Encode(event)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO event_outbox (id, event_type, aggregate_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, query,
		msg.ID,
		string(msg.Type),
		msg.Key,
		msg.Payload,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// FetchUnpublished locks up to limit unpublished rows in insertion order.
// Call it inside a transaction; concurrent relays skip locked rows.
func (s *Store) FetchUnpublished(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, event_type, aggregate_id, payload, created_at
		FROM event_outbox
		WHERE published_at IS NULL
		ORDER BY seq
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			eventType string
		)
		if err := rows.Scan(&e.ID, &eventType, &e.AggregateID, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		e.Type = events.Type(eventType)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps the given rows.
func (s *Store) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	exec := txcontext.ExecutorFrom(ctx, s.db)
	for _, entryID := range ids {
		if _, err := exec.ExecContext(ctx,
			`UPDATE event_outbox SET published_at = $1 WHERE id = $2`, at, entryID); err != nil {
			return fmt.Errorf("mark outbox entry %s published: %w", entryID, err)
		}
	}
	return nil
}
