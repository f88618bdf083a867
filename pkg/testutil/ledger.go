package testutil

import (
	"redart/internal/identity"
	id "redart/pkg/domain"
)

// PUID derives a deterministic creator identifier from a readable seed.
func PUID(seed string) id.PUID {
	return id.PUID(identity.HashString(seed))
}

// WUID derives a deterministic content identifier from a readable seed.
func WUID(seed string) id.WUID {
	return id.WUID(identity.HashString(seed))
}

// Triple returns a consistent (ruid, puid, awid) for the given seeds.
func Triple(creator, work string) (id.RUID, id.PUID, id.AWID) {
	puid := PUID(creator)
	awid := WUID(work)
	return identity.DeriveRUID(puid, awid), puid, awid
}

// Address returns the principal whose twenty bytes all equal b.
func Address(b byte) id.Address {
	var a id.Address
	for i := range a {
		a[i] = b
	}
	return a
}
