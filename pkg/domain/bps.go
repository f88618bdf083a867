package domain

import (
	"math/big"

	dErrors "redart/pkg/domain-errors"
)

// BPS is a share expressed in basis points; 10000 bps is 100%.
// The unsigned representation rules out negative shares at the type level.
type BPS uint16

// MaxBPS is the full share.
const MaxBPS BPS = 10000

var bpsDenominator = big.NewInt(int64(MaxBPS))

// Valid reports whether b is within [0, MaxBPS].
func (b BPS) Valid() bool {
	return b <= MaxBPS
}

// Of returns floor(amount * b / 10000). Amounts are non-negative, so floor and
// truncation toward zero coincide.
func (b BPS) Of(amount *big.Int) *big.Int {
	out := new(big.Int).Mul(amount, big.NewInt(int64(b)))
	return out.Quo(out, bpsDenominator)
}

// ParseAmount parses a non-negative base-10 integer amount such as a sale price.
func ParseAmount(s string) (*big.Int, error) {
	if s == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "amount is required")
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "amount must be a base-10 integer")
	}
	if v.Sign() < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "amount must not be negative")
	}
	return v, nil
}
