package models

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	dErrors "redart/pkg/domain-errors"
)

// ParseCID checks that s is a well-formed IPFS content identifier (v0 or v1)
// and returns its canonical string form.
func ParseCID(field, s string) (string, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	c, err := cid.Decode(s)
	if err != nil {
		return "", dErrors.New(dErrors.CodeValidation, field+" must be an IPFS CID")
	}
	return c.String(), nil
}

// ContentCID returns the CIDv1 (raw codec, sha2-256) of data, the identifier
// IPFS assigns to a single raw block.
func ContentCID(data []byte) (string, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", err
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

// IPFSURI renders a CID as an ipfs:// URI.
func IPFSURI(c string) string {
	return "ipfs://" + c
}
