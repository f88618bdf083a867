package models

import (
	"math/big"

	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
)

// ItemRequest is one royalty line in a request body. BPS is a plain int so
// out-of-range values reach validation instead of failing to decode.
type ItemRequest struct {
	Receiver string  `json:"receiver"`
	BPS      int     `json:"bps"`
	Source   *string `json:"source,omitempty"`
}

// RegisterRoyaltyRequest is the POST /royalties/{ruid} body.
type RegisterRoyaltyRequest struct {
	Items []ItemRequest `json:"items"`

	items []Item
}

func (r *RegisterRoyaltyRequest) Validate() error {
	if len(r.Items) > MaxItems {
		return dErrors.New(dErrors.CodeValidation, "royalty list has too many items")
	}
	r.items = make([]Item, 0, len(r.Items))
	for _, raw := range r.Items {
		receiver, err := id.ParseAddress(raw.Receiver)
		if err != nil {
			return err
		}
		if raw.BPS < 0 {
			return dErrors.New(dErrors.CodeValidation, "royalty share must not be negative")
		}
		if raw.BPS > int(id.MaxBPS) {
			return dErrors.New(dErrors.CodeInvalidRoyaltyTotal, "royalty share exceeds 10000 bps")
		}
		item := Item{Receiver: receiver, BPS: id.BPS(raw.BPS)}
		if raw.Source != nil {
			src, err := id.ParseRUID(*raw.Source)
			if err != nil {
				return err
			}
			item.Source = &src
		}
		r.items = append(r.items, item)
	}
	return nil
}

// ParsedItems returns the line items decoded by Validate.
func (r *RegisterRoyaltyRequest) ParsedItems() []Item {
	return r.items
}

// StatusResponse answers GET /royalties/{ruid}/status.
type StatusResponse struct {
	RUID       id.RUID `json:"ruid"`
	Registered bool    `json:"registered"`
}

// ReceiversResponse answers GET /royalties/{ruid}/receivers.
type ReceiversResponse struct {
	RUID      id.RUID      `json:"ruid"`
	Receivers []id.Address `json:"receivers"`
	BPS       []id.BPS     `json:"bps"`
}

// AmountResponse answers GET /royalties/{ruid}/total. Amounts are decimal
// strings; sale prices routinely exceed what JSON numbers carry exactly.
type AmountResponse struct {
	RUID      id.RUID `json:"ruid"`
	SalePrice string  `json:"sale_price"`
	Amount    string  `json:"amount"`
}

type PayoutResponse struct {
	Receiver id.Address `json:"receiver"`
	BPS      id.BPS     `json:"bps"`
	Source   *id.RUID   `json:"source,omitempty"`
	Amount   string     `json:"amount"`
}

// SplitResponse answers GET /royalties/{ruid}/split.
type SplitResponse struct {
	RUID        id.RUID          `json:"ruid"`
	SalePrice   string           `json:"sale_price"`
	Payouts     []PayoutResponse `json:"payouts"`
	Total       string           `json:"total"`
	Distributed string           `json:"distributed"`
	Drift       string           `json:"drift"`
}

func NewAmountResponse(ruid id.RUID, salePrice, amount *big.Int) AmountResponse {
	return AmountResponse{RUID: ruid, SalePrice: salePrice.String(), Amount: amount.String()}
}

func NewSplitResponse(s *Split) SplitResponse {
	resp := SplitResponse{
		RUID:        s.RUID,
		SalePrice:   s.SalePrice.String(),
		Payouts:     make([]PayoutResponse, 0, len(s.Payouts)),
		Total:       s.Total.String(),
		Distributed: s.Distributed.String(),
		Drift:       s.Drift.String(),
	}
	for _, p := range s.Payouts {
		resp.Payouts = append(resp.Payouts, PayoutResponse{
			Receiver: p.Receiver,
			BPS:      p.BPS,
			Source:   p.Source,
			Amount:   p.Amount.String(),
		})
	}
	return resp
}
