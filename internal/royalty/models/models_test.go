package models

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
)

var (
	authorX = id.Address{0x0a}
	authorY = id.Address{0x0b}
	caller  = id.Address{0xcc}
	ruidA   = id.RUID{0xa0}
	ruidB   = id.RUID{0xb0}
)

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func TestNewChainValidation(t *testing.T) {
	zero := id.RUID{}
	now := time.Now()

	tests := []struct {
		name  string
		ruid  id.RUID
		items []Item
		by    id.Address
		code  dErrors.Code
	}{
		{"zero ruid", id.RUID{}, []Item{{Receiver: authorX, BPS: 100}}, caller, dErrors.CodeInvalidKey},
		{"empty list", ruidA, nil, caller, dErrors.CodeEmptyRoyaltyList},
		{"sum over 10000", ruidA, []Item{{Receiver: authorX, BPS: 6000}, {Receiver: authorY, BPS: 4001}}, caller, dErrors.CodeInvalidRoyaltyTotal},
		{"single item over 10000", ruidA, []Item{{Receiver: authorX, BPS: 10001}}, caller, dErrors.CodeInvalidRoyaltyTotal},
		{"zero receiver", ruidA, []Item{{BPS: 100}}, caller, dErrors.CodeValidation},
		{"zero source", ruidA, []Item{{Receiver: authorX, BPS: 100, Source: &zero}}, caller, dErrors.CodeInvalidKey},
		{"too many items", ruidA, make([]Item, MaxItems+1), caller, dErrors.CodeValidation},
		{"no caller", ruidA, []Item{{Receiver: authorX, BPS: 100}}, id.Address{}, dErrors.CodeUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChain(tt.ruid, tt.items, tt.by, now)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestNewChainBoundaries(t *testing.T) {
	now := time.Now()

	full, err := NewChain(ruidA, []Item{{Receiver: authorX, BPS: 7000}, {Receiver: authorY, BPS: 3000}}, caller, now)
	require.NoError(t, err)
	assert.Equal(t, id.MaxBPS, full.TotalBPS())

	zeros, err := NewChain(ruidA, []Item{{Receiver: authorX}, {Receiver: authorY}}, caller, now)
	require.NoError(t, err)
	assert.Equal(t, id.BPS(0), zeros.TotalBPS())
	assert.Equal(t, 0, zeros.TotalAmount(ether(1)).Sign())

	self := ruidA
	selfRef, err := NewChain(ruidA, []Item{{Receiver: authorX, BPS: 10, Source: &self}}, caller, now)
	require.NoError(t, err, "source references are not resolved")
	assert.Equal(t, ruidA, *selfRef.Items[0].Source)
}

func TestChainKeepsOrderAndIsolation(t *testing.T) {
	src := ruidA
	items := []Item{
		{Receiver: authorY, BPS: 1000, Source: &src},
		{Receiver: authorX, BPS: 2000},
	}
	chain, err := NewChain(ruidB, items, caller, time.Now())
	require.NoError(t, err)

	items[0].BPS = 9999
	src[0] = 0xff

	assert.Equal(t, id.BPS(1000), chain.Items[0].BPS)
	assert.Equal(t, ruidA, *chain.Items[0].Source)

	receivers, shares := chain.Receivers()
	assert.Equal(t, []id.Address{authorY, authorX}, receivers)
	assert.Equal(t, []id.BPS{1000, 2000}, shares)
}

func TestTotalAmount(t *testing.T) {
	chainA, err := NewChain(ruidA, []Item{{Receiver: authorX, BPS: 3000}}, caller, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "300000000000000000", chainA.TotalAmount(ether(1)).String())

	src := ruidA
	chainB, err := NewChain(ruidB, []Item{
		{Receiver: authorX, BPS: 2000},
		{Receiver: authorY, BPS: 1000, Source: &src},
	}, caller, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "300000000000000000", chainB.TotalAmount(ether(1)).String())
	assert.Equal(t, 0, chainB.TotalAmount(big.NewInt(0)).Sign())

	three, err := NewChain(ruidA, []Item{
		{Receiver: authorX, BPS: 3000},
		{Receiver: authorY, BPS: 2000},
		{Receiver: caller, BPS: 1000},
	}, caller, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "600000000000000000", three.TotalAmount(ether(1)).String())
}

func TestSplitRoundingDrift(t *testing.T) {
	chain, err := NewChain(ruidA, []Item{
		{Receiver: authorX, BPS: 3333},
		{Receiver: authorY, BPS: 3333},
		{Receiver: caller, BPS: 3334},
	}, caller, time.Now())
	require.NoError(t, err)

	split := chain.Split(big.NewInt(1))
	assert.Equal(t, "1", split.Total.String())
	assert.Equal(t, "0", split.Distributed.String())
	assert.Equal(t, "1", split.Drift.String())

	for _, price := range []int64{0, 7, 9999, 10001, 123456789} {
		split := chain.Split(big.NewInt(price))
		sum := new(big.Int)
		for _, p := range split.Payouts {
			sum.Add(sum, p.Amount)
		}
		assert.Equal(t, 0, sum.Cmp(split.Distributed))
		assert.True(t, split.Drift.Sign() >= 0)
		assert.True(t, split.Drift.Cmp(big.NewInt(int64(len(chain.Items)))) < 0)
	}
}

func TestSplitLargePrice(t *testing.T) {
	chain, err := NewChain(ruidA, []Item{{Receiver: authorX, BPS: 2500}, {Receiver: authorY, BPS: 500}}, caller, time.Now())
	require.NoError(t, err)

	split := chain.Split(ether(1000))
	require.Len(t, split.Payouts, 2)
	assert.Equal(t, ether(250).String(), split.Payouts[0].Amount.String())
	assert.Equal(t, ether(50).String(), split.Payouts[1].Amount.String())
	assert.Equal(t, ether(300).String(), split.Total.String())
	assert.Equal(t, 0, split.Drift.Sign())
}

func TestRegisterRoyaltyRequestValidate(t *testing.T) {
	src := ruidA.String()
	req := RegisterRoyaltyRequest{Items: []ItemRequest{
		{Receiver: authorX.String(), BPS: 2000},
		{Receiver: authorY.String(), BPS: 1000, Source: &src},
	}}
	require.NoError(t, req.Validate())
	items := req.ParsedItems()
	require.Len(t, items, 2)
	assert.Nil(t, items[0].Source)
	assert.Equal(t, ruidA, *items[1].Source)

	neg := RegisterRoyaltyRequest{Items: []ItemRequest{{Receiver: authorX.String(), BPS: -1}}}
	assert.True(t, dErrors.HasCode(neg.Validate(), dErrors.CodeValidation))

	over := RegisterRoyaltyRequest{Items: []ItemRequest{{Receiver: authorX.String(), BPS: 70000}}}
	assert.True(t, dErrors.HasCode(over.Validate(), dErrors.CodeInvalidRoyaltyTotal))

	bad := RegisterRoyaltyRequest{Items: []ItemRequest{{Receiver: "0x01", BPS: 1}}}
	assert.Error(t, bad.Validate())
}
