// Package events defines the ledger notifications emitted after successful
// mutations. Indexers and downstream consumers rely on them; ledger invariants
// never do.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "redart/pkg/domain"
)

// Type names a ledger notification.
type Type string

const (
	TypeCopyrightClaimed  Type = "copyright_claimed"
	TypeDerivativeLinked  Type = "derivative_linked"
	TypeRoyaltyRegistered Type = "royalty_registered"
	TypeArtMinted         Type = "art_minted"
)

// ErrDropped is returned by emitters that shed load instead of blocking.
// Callers treat it as a lost notification, not a failed mutation.
var ErrDropped = errors.New("event dropped: buffer full")

// Event is the transport-agnostic notification payload.
type Event struct {
	ID         uuid.UUID  `json:"id"`
	Type       Type       `json:"type"`
	RUID       id.RUID    `json:"ruid"`
	Origin     *id.RUID   `json:"origin,omitempty"`
	Actor      id.Address `json:"actor"`
	Collection string     `json:"collection,omitempty"`
	TokenID    uint64     `json:"token_id,omitempty"`
	RequestID  string     `json:"request_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// Key is the partitioning key: every event about one registration lands on
// the same partition, in emission order.
func (e Event) Key() string {
	return e.RUID.String()
}

// Message is an encoded event ready for a broker.
type Message struct {
	ID      uuid.UUID
	Key     string
	Type    Type
	Payload []byte
}

// Encode serialises an event.
func Encode(e Event) (Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return Message{}, fmt.Errorf("marshal event %s: %w", e.Type, err)
	}
	return Message{ID: e.ID, Key: e.Key(), Type: e.Type, Payload: payload}, nil
}

// Decode parses a payload produced by Encode.
func Decode(payload []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return e, nil
}

// Store persists or forwards events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Emitter is what ledger services depend on.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}
