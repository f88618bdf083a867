// Package identity binds registration identifiers to their creator and work.
//
// RUID = Keccak-256(PUID ++ AWID). Anyone holding the three values can recompute
// and check the binding without trusting the registrant, so this package stays
// pure: no storage, no clock, no errors beyond a false result.
package identity

import (
	"golang.org/x/crypto/sha3"

	id "redart/pkg/domain"
)

// DeriveRUID returns Keccak-256(puid ++ awid).
func DeriveRUID(puid id.PUID, awid id.AWID) id.RUID {
	h := sha3.NewLegacyKeccak256()
	h.Write(puid[:])
	h.Write(awid[:])
	var out id.RUID
	h.Sum(out[:0])
	return out
}

// Verify reports whether ruid derives from puid and awid.
func Verify(ruid id.RUID, puid id.PUID, awid id.AWID) bool {
	return ruid == DeriveRUID(puid, awid)
}

// Keccak256 hashes the concatenation of parts.
func Keccak256(parts ...[]byte) [id.HashLength]byte {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out [id.HashLength]byte
	h.Sum(out[:0])
	return out
}

// HashString hashes the UTF-8 bytes of s. Tooling uses it to mint PUIDs and WUIDs
// from human-readable seeds.
func HashString(s string) [id.HashLength]byte {
	return Keccak256([]byte(s))
}
