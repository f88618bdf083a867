package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
)

const cidV0 = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

func mustContentCID(t *testing.T, data string) string {
	t.Helper()
	c, err := ContentCID([]byte(data))
	require.NoError(t, err)
	return c
}

func validParams(t *testing.T) CollectionParams {
	return CollectionParams{
		Name:          " Harbor Sketches ",
		Symbol:        "HBS",
		MetadataCID:   mustContentCID(t, "collection metadata"),
		LogoCID:       cidV0,
		Pseudonym:     "ink",
		PUID:          id.PUID{0x01},
		RoyaltyFeeBPS: 500,
	}
}

func TestContentCID(t *testing.T) {
	a := mustContentCID(t, "artwork")
	b := mustContentCID(t, "artwork")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, mustContentCID(t, "other artwork"))
	assert.Equal(t, "b", a[:1], "CIDv1 renders in base32")

	parsed, err := ParseCID("metadata_cid", a)
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}

func TestParseCID(t *testing.T) {
	parsed, err := ParseCID("logo_cid", cidV0)
	require.NoError(t, err)
	assert.Equal(t, cidV0, parsed)

	for _, bad := range []string{"", "QmArtMetadataHash", "not a cid"} {
		_, err := ParseCID("logo_cid", bad)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), bad)
	}
}

func TestNewCollection(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	owner := id.Address{0xaa}

	c, err := NewCollection(validParams(t), owner, now)
	require.NoError(t, err)
	assert.Equal(t, "Harbor Sketches", c.Name)
	assert.Equal(t, owner, c.Owner)
	assert.Nil(t, c.Origin)
	assert.Equal(t, "ipfs://"+c.MetadataCID, c.MetadataURI())

	origin := id.RUID{0x05}
	params := validParams(t)
	params.OriginRUID = &origin
	c, err = NewCollection(params, owner, now)
	require.NoError(t, err)
	require.NotNil(t, c.Origin)
	assert.Equal(t, origin, c.Origin.RUID)

	clone := c.Clone()
	clone.Origin.RUID = id.RUID{}
	assert.Equal(t, origin, c.Origin.RUID)
}

func TestNewCollectionRejects(t *testing.T) {
	zero := id.RUID{}
	tests := []struct {
		name   string
		mutate func(*CollectionParams)
		owner  id.Address
		code   dErrors.Code
	}{
		{"no owner", func(*CollectionParams) {}, id.Address{}, dErrors.CodeUnauthorized},
		{"blank name", func(p *CollectionParams) { p.Name = "  " }, id.Address{0xaa}, dErrors.CodeValidation},
		{"long symbol", func(p *CollectionParams) { p.Symbol = "ABCDEFGHIJKLMNOPQ" }, id.Address{0xaa}, dErrors.CodeValidation},
		{"placeholder metadata", func(p *CollectionParams) { p.MetadataCID = "QmArtMetadataHash" }, id.Address{0xaa}, dErrors.CodeValidation},
		{"missing logo", func(p *CollectionParams) { p.LogoCID = "" }, id.Address{0xaa}, dErrors.CodeValidation},
		{"zero puid", func(p *CollectionParams) { p.PUID = id.PUID{} }, id.Address{0xaa}, dErrors.CodeInvalidKey},
		{"fee over 100%", func(p *CollectionParams) { p.RoyaltyFeeBPS = 10001 }, id.Address{0xaa}, dErrors.CodeInvalidRoyaltyTotal},
		{"zero origin", func(p *CollectionParams) { p.OriginRUID = &zero }, id.Address{0xaa}, dErrors.CodeInvalidKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams(t)
			tt.mutate(&params)
			_, err := NewCollection(params, tt.owner, time.Now())
			assert.True(t, dErrors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestValidateTokenURI(t *testing.T) {
	uri, err := ValidateTokenURI(" QmTokenMetadataHash ")
	require.NoError(t, err)
	assert.Equal(t, "QmTokenMetadataHash", uri)

	_, err = ValidateTokenURI(" ")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestCreateCollectionRequest(t *testing.T) {
	origin := id.RUID{0x07}.String()
	req := CreateCollectionRequest{
		Name:          "Harbor",
		Symbol:        "HB",
		MetadataCID:   cidV0,
		LogoCID:       cidV0,
		PUID:          id.PUID{0x01}.String(),
		RoyaltyFeeBPS: 500,
		Origin:        &origin,
	}
	require.NoError(t, req.Validate())
	params := req.Params()
	assert.Equal(t, id.BPS(500), params.RoyaltyFeeBPS)
	require.NotNil(t, params.OriginRUID)
	assert.Equal(t, id.RUID{0x07}, *params.OriginRUID)

	req.RoyaltyFeeBPS = -1
	assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeValidation))
	req.RoyaltyFeeBPS = 10001
	assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeInvalidRoyaltyTotal))
	req.RoyaltyFeeBPS = 500
	req.PUID = "zz"
	assert.Error(t, req.Validate())
}
