package domain

import (
	"encoding/hex"
	"strings"

	dErrors "redart/pkg/domain-errors"
)

// HashLength is the width of every ledger identifier.
const HashLength = 32

// AddressLength is the width of a principal address.
const AddressLength = 20

// PUID identifies a (pseudonymous) creator. Opaque 32-byte digest.
type PUID [HashLength]byte

// WUID identifies a specific piece of content (AWID for artworks). Opaque 32-byte digest.
type WUID [HashLength]byte

// AWID is the artwork spelling of WUID.
type AWID = WUID

// RUID is the primary key of a registration and of its royalty chain.
//
// Invariant: a RUID used as a key is never the zero value. Parsing accepts zero so
// that services can report it as CodeInvalidKey rather than a parse failure.
type RUID [HashLength]byte

// Address is a principal (registrant, receiver, owner).
type Address [AddressLength]byte

func (p PUID) String() string    { return encodeHex(p[:]) }
func (w WUID) String() string    { return encodeHex(w[:]) }
func (r RUID) String() string    { return encodeHex(r[:]) }
func (a Address) String() string { return encodeHex(a[:]) }

func (p PUID) IsZero() bool    { return p == PUID{} }
func (w WUID) IsZero() bool    { return w == WUID{} }
func (r RUID) IsZero() bool    { return r == RUID{} }
func (a Address) IsZero() bool { return a == Address{} }

func (p PUID) Bytes() []byte    { return p[:] }
func (w WUID) Bytes() []byte    { return w[:] }
func (r RUID) Bytes() []byte    { return r[:] }
func (a Address) Bytes() []byte { return a[:] }

// ParsePUID parses a 0x-prefixed (or bare) 64 character hex string.
func ParsePUID(s string) (PUID, error) {
	var out PUID
	err := decodeFixedHex(s, out[:], "puid")
	return out, err
}

// ParseWUID parses a 0x-prefixed (or bare) 64 character hex string.
func ParseWUID(s string) (WUID, error) {
	var out WUID
	err := decodeFixedHex(s, out[:], "wuid")
	return out, err
}

// ParseRUID parses a 0x-prefixed (or bare) 64 character hex string.
func ParseRUID(s string) (RUID, error) {
	var out RUID
	err := decodeFixedHex(s, out[:], "ruid")
	return out, err
}

// ParseAddress parses a 0x-prefixed (or bare) 40 character hex string. Mixed-case
// input is accepted without checksum validation.
func ParseAddress(s string) (Address, error) {
	var out Address
	err := decodeFixedHex(s, out[:], "address")
	return out, err
}

// RUIDFromBytes copies b into a RUID; b must be exactly HashLength bytes.
func RUIDFromBytes(b []byte) (RUID, error) {
	var out RUID
	if len(b) != HashLength {
		return out, dErrors.New(dErrors.CodeInvalidInput, "ruid must be 32 bytes")
	}
	copy(out[:], b)
	return out, nil
}

func (p PUID) MarshalText() ([]byte, error)    { return []byte(p.String()), nil }
func (w WUID) MarshalText() ([]byte, error)    { return []byte(w.String()), nil }
func (r RUID) MarshalText() ([]byte, error)    { return []byte(r.String()), nil }
func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (p *PUID) UnmarshalText(b []byte) error {
	v, err := ParsePUID(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (w *WUID) UnmarshalText(b []byte) error {
	v, err := ParseWUID(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

func (r *RUID) UnmarshalText(b []byte) error {
	v, err := ParseRUID(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (a *Address) UnmarshalText(b []byte) error {
	v, err := ParseAddress(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func encodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func decodeFixedHex(s string, dst []byte, field string) error {
	if s == "" {
		return dErrors.New(dErrors.CodeInvalidInput, field+" cannot be empty")
	}
	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(raw) != 2*len(dst) {
		return dErrors.New(dErrors.CodeInvalidInput, field+" has invalid length")
	}
	if _, err := hex.Decode(dst, []byte(raw)); err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, field+" must be hex encoded")
	}
	return nil
}
