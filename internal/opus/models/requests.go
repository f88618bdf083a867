package models

import (
	"math/big"

	"github.com/google/uuid"

	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
)

// CreateCollectionRequest is the POST /collections body.
type CreateCollectionRequest struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	MetadataCID   string  `json:"metadata_cid"`
	LogoCID       string  `json:"logo_cid"`
	Pseudonym     string  `json:"pseudonym"`
	PUID          string  `json:"puid"`
	RoyaltyFeeBPS int     `json:"royalty_fee_bps"`
	Origin        *string `json:"origin,omitempty"`

	params CollectionParams
}

func (r *CreateCollectionRequest) Validate() error {
	puid, err := id.ParsePUID(r.PUID)
	if err != nil {
		return err
	}
	if r.RoyaltyFeeBPS < 0 {
		return dErrors.New(dErrors.CodeValidation, "royalty fee must not be negative")
	}
	if r.RoyaltyFeeBPS > int(id.MaxBPS) {
		return dErrors.New(dErrors.CodeInvalidRoyaltyTotal, "royalty fee exceeds 10000 bps")
	}
	r.params = CollectionParams{
		Name:          r.Name,
		Symbol:        r.Symbol,
		MetadataCID:   r.MetadataCID,
		LogoCID:       r.LogoCID,
		Pseudonym:     r.Pseudonym,
		PUID:          puid,
		RoyaltyFeeBPS: id.BPS(r.RoyaltyFeeBPS),
	}
	if r.Origin != nil {
		origin, err := id.ParseRUID(*r.Origin)
		if err != nil {
			return err
		}
		r.params.OriginRUID = &origin
	}
	return nil
}

// Params returns the parameters decoded by Validate.
func (r *CreateCollectionRequest) Params() CollectionParams {
	return r.params
}

// MintRequest is the POST /collections/{id}/tokens body.
type MintRequest struct {
	TokenURI string `json:"token_uri"`
	RUID     string `json:"ruid"`
	PUID     string `json:"puid"`
	AWID     string `json:"awid"`

	ruid id.RUID
	puid id.PUID
	awid id.AWID
}

func (r *MintRequest) Validate() error {
	var err error
	if r.ruid, err = id.ParseRUID(r.RUID); err != nil {
		return err
	}
	if r.puid, err = id.ParsePUID(r.PUID); err != nil {
		return err
	}
	r.awid, err = id.ParseWUID(r.AWID)
	return err
}

// Parsed returns the triple decoded by Validate.
func (r *MintRequest) Parsed() (id.RUID, id.PUID, id.AWID) {
	return r.ruid, r.puid, r.awid
}

// CollectionResponse is a collection plus its derived metadata URI.
type CollectionResponse struct {
	*Collection
	MetadataURI string `json:"metadata_uri"`
	TotalSupply uint64 `json:"total_supply"`
}

// RoyaltyInfoResponse answers GET /collections/{id}/tokens/{token}/royalty.
type RoyaltyInfoResponse struct {
	CollectionID uuid.UUID  `json:"collection_id"`
	TokenID      uint64     `json:"token_id"`
	Receiver     id.Address `json:"receiver"`
	SalePrice    string     `json:"sale_price"`
	Amount       string     `json:"amount"`
}

func NewRoyaltyInfoResponse(collectionID uuid.UUID, tokenID uint64, receiver id.Address, salePrice, amount *big.Int) RoyaltyInfoResponse {
	return RoyaltyInfoResponse{
		CollectionID: collectionID,
		TokenID:      tokenID,
		Receiver:     receiver,
		SalePrice:    salePrice.String(),
		Amount:       amount.String(),
	}
}

// OriginResponse answers GET /collections/{id}/origin.
type OriginResponse struct {
	Origin        *Origin `json:"origin"`
	RoyaltyFeeBPS id.BPS  `json:"royalty_fee_bps"`
}
