package models

import (
	"time"

	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
)

// Edge records that Derivative builds on Origin. Edges are append-only.
type Edge struct {
	Derivative id.RUID    `json:"derivative"`
	Origin     id.RUID    `json:"origin"`
	LinkedBy   id.Address `json:"linked_by"`
	LinkedAt   time.Time  `json:"linked_at"`
}

// NewEdge checks the identifiers of a link. The registry checks happen in
// the service because they need the registry.
func NewEdge(derivative, origin id.RUID, linkedBy id.Address, now time.Time) (*Edge, error) {
	if derivative.IsZero() || origin.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidKey, "derivative and origin must not be zero")
	}
	if derivative == origin {
		return nil, dErrors.New(dErrors.CodeInvalidKey, "a registration cannot derive from itself")
	}
	if linkedBy.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is required")
	}
	return &Edge{
		Derivative: derivative,
		Origin:     origin,
		LinkedBy:   linkedBy,
		LinkedAt:   now,
	}, nil
}

// LinkRequest is the POST /copyrights/{ruid}/origins body.
type LinkRequest struct {
	Origin string `json:"origin"`

	origin id.RUID
}

func (r *LinkRequest) Validate() error {
	var err error
	r.origin, err = id.ParseRUID(r.Origin)
	return err
}

// ParsedOrigin returns the identifier decoded by Validate.
func (r *LinkRequest) ParsedOrigin() id.RUID {
	return r.origin
}

// RelationsResponse lists one side of the graph around a registration.
type RelationsResponse struct {
	RUID    id.RUID   `json:"ruid"`
	Related []id.RUID `json:"related"`
}
