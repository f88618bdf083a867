// Package verification is the gate content-minting flows pass through: a
// (ruid, puid, awid) triple is accepted only when it derives under the
// identity scheme, and per-sale royalty info follows the same floor rule as
// the royalty manager.
package verification

import (
	"context"
	"log/slog"
	"math/big"

	cmodels "redart/internal/copyright/models"
	"redart/internal/identity"
	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
)

// Registry is the read side of the copyright registry.
type Registry interface {
	GetRegistration(ctx context.Context, ruid id.RUID) (*cmodels.Registration, error)
}

// Result describes a verified triple and its registry status.
type Result struct {
	RUID         id.RUID     `json:"ruid"`
	Registered   bool        `json:"registered"`
	RegisteredBy *id.Address `json:"registered_by,omitempty"`
	OpusType     string      `json:"opus_type,omitempty"`
}

type Verifier struct {
	registry Registry
	logger   *slog.Logger
}

type Option func(*Verifier)

func WithLogger(logger *slog.Logger) Option {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// NewVerifier returns a verifier. A nil registry limits it to triple checks.
func NewVerifier(registry Registry, opts ...Option) *Verifier {
	v := &Verifier{registry: registry, logger: slog.Default()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifyTriple fails with CodeCopyrightMismatch unless ruid derives from puid
// and awid.
func (v *Verifier) VerifyTriple(ruid id.RUID, puid id.PUID, awid id.AWID) error {
	if !identity.Verify(ruid, puid, awid) {
		return dErrors.New(dErrors.CodeCopyrightMismatch, "copyright verification failed, RUID is not equal")
	}
	return nil
}

// Verify checks the triple and then looks ruid up in the registry. An
// unregistered but consistent triple is not an error.
func (v *Verifier) Verify(ctx context.Context, ruid id.RUID, puid id.PUID, awid id.AWID) (*Result, error) {
	if err := v.VerifyTriple(ruid, puid, awid); err != nil {
		v.logger.InfoContext(ctx, "triple verification failed",
			"ruid", ruid.String(),
			"puid", puid.String(),
		)
		return nil, err
	}

	result := &Result{RUID: ruid}
	if v.registry == nil {
		return result, nil
	}
	reg, err := v.registry.GetRegistration(ctx, ruid)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return result, nil
		}
		return nil, err
	}
	result.Registered = true
	result.RegisteredBy = &reg.RegisteredBy
	result.OpusType = reg.OpusType
	return result, nil
}

// RoyaltyInfo answers an EIP-2981 style query: receiver gets
// floor(salePrice * bps / 10000).
func RoyaltyInfo(receiver id.Address, bps id.BPS, salePrice *big.Int) (id.Address, *big.Int, error) {
	if !bps.Valid() {
		return id.Address{}, nil, dErrors.New(dErrors.CodeInvalidRoyaltyTotal, "royalty share exceeds 10000 bps")
	}
	if salePrice == nil || salePrice.Sign() < 0 {
		return id.Address{}, nil, dErrors.New(dErrors.CodeValidation, "sale price must not be negative")
	}
	return receiver, bps.Of(salePrice), nil
}

// VerifyRequest is the POST /verify body.
type VerifyRequest struct {
	RUID string `json:"ruid"`
	PUID string `json:"puid"`
	AWID string `json:"awid"`

	ruid id.RUID
	puid id.PUID
	awid id.AWID
}

func (r *VerifyRequest) Validate() error {
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
func (r *VerifyRequest) Parsed() (id.RUID, id.PUID, id.AWID) {
	return r.ruid, r.puid, r.awid
}
