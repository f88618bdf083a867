package models

import (
	"strings"
	"time"

	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
)

const (
	// MaxWorks bounds the content identifiers attached to one registration.
	MaxWorks = 256
	// MaxOpusTypeLength bounds the free-form work category.
	MaxOpusTypeLength = 64
)

// Registration is the immutable record that a principal claimed a RUID.
//
// Invariants:
//   - RUID is non-zero and never changes
//   - WUID is non-empty and keeps the caller's order
//   - OpusType is non-blank
//   - Sequence is assigned by the store, strictly increasing in commit order
type Registration struct {
	RUID         id.RUID    `json:"ruid"`
	PUID         id.PUID    `json:"puid"`
	WUID         []id.WUID  `json:"wuid"`
	OpusType     string     `json:"opus_type"`
	RegisteredBy id.Address `json:"registered_by"`
	RegisteredAt time.Time  `json:"registered_at"`
	Sequence     uint64     `json:"sequence"`
}

// NewRegistration validates a claim and builds the record. Sequence is left
// zero for the store to assign.
func NewRegistration(ruid id.RUID, puid id.PUID, wuid []id.WUID, opusType string, registeredBy id.Address, now time.Time) (*Registration, error) {
	if ruid.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidKey, "ruid must not be zero")
	}
	if len(wuid) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "wuid must contain at least one content identifier")
	}
	if len(wuid) > MaxWorks {
		return nil, dErrors.New(dErrors.CodeValidation, "too many content identifiers")
	}
	opusType = strings.TrimSpace(opusType)
	if opusType == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "opus type is required")
	}
	if len(opusType) > MaxOpusTypeLength {
		return nil, dErrors.New(dErrors.CodeValidation, "opus type is too long")
	}
	if registeredBy.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is required")
	}
	return &Registration{
		RUID:         ruid,
		PUID:         puid,
		WUID:         append([]id.WUID(nil), wuid...),
		OpusType:     opusType,
		RegisteredBy: registeredBy,
		RegisteredAt: now,
	}, nil
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (r *Registration) Clone() *Registration {
	if r == nil {
		return nil
	}
	out := *r
	out.WUID = append([]id.WUID(nil), r.WUID...)
	return &out
}

// Precedes reports whether r was registered before other.
func (r *Registration) Precedes(other *Registration) bool {
	return r.Sequence < other.Sequence
}
