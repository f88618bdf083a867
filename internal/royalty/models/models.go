package models

import (
	"math/big"
	"time"

	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
)

// MaxItems bounds the length of one royalty chain.
const MaxItems = 100

// Item is one line of a royalty chain. A nil Source is a root share; a
// non-nil Source names another RUID whose own chain the consumer resolves.
type Item struct {
	Receiver id.Address `json:"receiver"`
	BPS      id.BPS     `json:"bps"`
	Source   *id.RUID   `json:"source,omitempty"`
}

// Chain is the claim-once royalty distribution for one RUID.
//
// Invariants:
//   - Items is non-empty and keeps registration order
//   - every item is within [0, 10000] bps and the sum never exceeds 10000
type Chain struct {
	RUID         id.RUID    `json:"ruid"`
	Items        []Item     `json:"items"`
	RegisteredBy id.Address `json:"registered_by"`
	RegisteredAt time.Time  `json:"registered_at"`
}

// NewChain validates items and builds the chain.
func NewChain(ruid id.RUID, items []Item, registeredBy id.Address, now time.Time) (*Chain, error) {
	if ruid.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidKey, "ruid must not be zero")
	}
	if len(items) == 0 {
		return nil, dErrors.New(dErrors.CodeEmptyRoyaltyList, "royalty list must not be empty")
	}
	if len(items) > MaxItems {
		return nil, dErrors.New(dErrors.CodeValidation, "royalty list has too many items")
	}

	var total uint32
	for _, item := range items {
		if !item.BPS.Valid() {
			return nil, dErrors.New(dErrors.CodeInvalidRoyaltyTotal, "royalty share exceeds 10000 bps")
		}
		if item.Receiver.IsZero() {
			return nil, dErrors.New(dErrors.CodeValidation, "royalty receiver must not be zero")
		}
		if item.Source != nil && item.Source.IsZero() {
			return nil, dErrors.New(dErrors.CodeInvalidKey, "royalty source must be omitted or non-zero")
		}
		total += uint32(item.BPS)
	}
	if total > uint32(id.MaxBPS) {
		return nil, dErrors.New(dErrors.CodeInvalidRoyaltyTotal, "royalty shares exceed 10000 bps in total")
	}
	if registeredBy.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is required")
	}

	return &Chain{
		RUID:         ruid,
		Items:        cloneItems(items),
		RegisteredBy: registeredBy,
		RegisteredAt: now,
	}, nil
}

// TotalBPS is the sum of all shares; at most 10000 for a valid chain.
func (c *Chain) TotalBPS() id.BPS {
	var total id.BPS
	for _, item := range c.Items {
		total += item.BPS
	}
	return total
}

// Receivers projects the chain into parallel receiver and share slices.
func (c *Chain) Receivers() ([]id.Address, []id.BPS) {
	receivers := make([]id.Address, len(c.Items))
	shares := make([]id.BPS, len(c.Items))
	for i, item := range c.Items {
		receivers[i] = item.Receiver
		shares[i] = item.BPS
	}
	return receivers, shares
}

// Payout is one receiver's share of a sale.
type Payout struct {
	Receiver id.Address
	BPS      id.BPS
	Source   *id.RUID
	Amount   *big.Int
}

// Split is a sale price divided along a chain. Each payout is floored on its
// own, so Distributed may fall short of Total by fewer than len(Payouts)
// minor units; Drift records that difference.
type Split struct {
	RUID        id.RUID
	SalePrice   *big.Int
	Payouts     []Payout
	Total       *big.Int
	Distributed *big.Int
	Drift       *big.Int
}

// TotalAmount returns floor(salePrice * TotalBPS / 10000).
func (c *Chain) TotalAmount(salePrice *big.Int) *big.Int {
	return c.TotalBPS().Of(salePrice)
}

// Split divides salePrice along the chain, flooring each item independently.
func (c *Chain) Split(salePrice *big.Int) *Split {
	out := &Split{
		RUID:        c.RUID,
		SalePrice:   new(big.Int).Set(salePrice),
		Payouts:     make([]Payout, 0, len(c.Items)),
		Total:       c.TotalAmount(salePrice),
		Distributed: new(big.Int),
	}
	for _, item := range c.Items {
		amount := item.BPS.Of(salePrice)
		out.Distributed.Add(out.Distributed, amount)
		out.Payouts = append(out.Payouts, Payout{
			Receiver: item.Receiver,
			BPS:      item.BPS,
			Source:   cloneSource(item.Source),
			Amount:   amount,
		})
	}
	out.Drift = new(big.Int).Sub(out.Total, out.Distributed)
	return out
}

// Clone returns a deep copy.
func (c *Chain) Clone() *Chain {
	if c == nil {
		return nil
	}
	out := *c
	out.Items = cloneItems(c.Items)
	return &out
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = Item{Receiver: item.Receiver, BPS: item.BPS, Source: cloneSource(item.Source)}
	}
	return out
}

func cloneSource(src *id.RUID) *id.RUID {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}
