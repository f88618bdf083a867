package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
)

const (
	MaxNameLength   = 128
	MaxSymbolLength = 16
	MaxURILength    = 2048
)

// Origin is the registered work an artwork collection derives from.
type Origin struct {
	RUID   id.RUID    `json:"ruid"`
	Author id.Address `json:"author"`
}

// Collection is an owner's series of artworks sharing one royalty rate.
type Collection struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Symbol        string     `json:"symbol"`
	MetadataCID   string     `json:"metadata_cid"`
	LogoCID       string     `json:"logo_cid"`
	Pseudonym     string     `json:"pseudonym"`
	PUID          id.PUID    `json:"puid"`
	RoyaltyFeeBPS id.BPS     `json:"royalty_fee_bps"`
	Owner         id.Address `json:"owner"`
	Origin        *Origin    `json:"origin,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// MetadataURI is the ipfs:// location of the collection metadata.
func (c *Collection) MetadataURI() string {
	return IPFSURI(c.MetadataCID)
}

// Token is one minted artwork. Token ids start at 1 within a collection.
type Token struct {
	CollectionID uuid.UUID  `json:"collection_id"`
	TokenID      uint64     `json:"token_id"`
	URI          string     `json:"token_uri"`
	RUID         id.RUID    `json:"ruid"`
	Owner        id.Address `json:"owner"`
	MintedAt     time.Time  `json:"minted_at"`
}

// CollectionParams is the caller-supplied part of a new collection.
type CollectionParams struct {
	Name          string
	Symbol        string
	MetadataCID   string
	LogoCID       string
	Pseudonym     string
	PUID          id.PUID
	RoyaltyFeeBPS id.BPS
	OriginRUID    *id.RUID
}

// NewCollection validates params and builds a collection owned by owner.
// The origin author is filled in by the caller after a registry lookup.
func NewCollection(params CollectionParams, owner id.Address, now time.Time) (*Collection, error) {
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is required")
	}
	name := strings.TrimSpace(params.Name)
	if name == "" || len(name) > MaxNameLength {
		return nil, dErrors.New(dErrors.CodeValidation, "name is required and must be at most 128 bytes")
	}
	symbol := strings.TrimSpace(params.Symbol)
	if symbol == "" || len(symbol) > MaxSymbolLength {
		return nil, dErrors.New(dErrors.CodeValidation, "symbol is required and must be at most 16 bytes")
	}
	metadata, err := ParseCID("metadata_cid", params.MetadataCID)
	if err != nil {
		return nil, err
	}
	logo, err := ParseCID("logo_cid", params.LogoCID)
	if err != nil {
		return nil, err
	}
	if params.PUID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidKey, "puid must not be zero")
	}
	if !params.RoyaltyFeeBPS.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidRoyaltyTotal, "royalty fee exceeds 10000 bps")
	}

	c := &Collection{
		ID:            uuid.New(),
		Name:          name,
		Symbol:        symbol,
		MetadataCID:   metadata,
		LogoCID:       logo,
		Pseudonym:     strings.TrimSpace(params.Pseudonym),
		PUID:          params.PUID,
		RoyaltyFeeBPS: params.RoyaltyFeeBPS,
		Owner:         owner,
		CreatedAt:     now,
	}
	if params.OriginRUID != nil {
		if params.OriginRUID.IsZero() {
			return nil, dErrors.New(dErrors.CodeInvalidKey, "origin must be omitted or non-zero")
		}
		c.Origin = &Origin{RUID: *params.OriginRUID}
	}
	return c, nil
}

// Clone returns a deep copy.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return nil
	}
	out := *c
	if c.Origin != nil {
		origin := *c.Origin
		out.Origin = &origin
	}
	return &out
}

// ValidateTokenURI checks a per-token metadata location. Any non-blank URI or
// bare CID is accepted.
func ValidateTokenURI(uri string) (string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", dErrors.New(dErrors.CodeValidation, "token uri is required")
	}
	if len(uri) > MaxURILength {
		return "", dErrors.New(dErrors.CodeValidation, "token uri is too long")
	}
	return uri, nil
}
