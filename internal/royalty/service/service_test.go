package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	copyright "redart/internal/copyright/service"
	copyrightstore "redart/internal/copyright/store"
	"redart/internal/events"
	"redart/internal/events/publisher"
	eventstore "redart/internal/events/store/memory"
	"redart/internal/identity"
	"redart/internal/royalty/models"
	"redart/internal/royalty/store"
	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/testutil"
)

type failingEmitter struct{ err error }

func (f failingEmitter) Emit(context.Context, events.Event) error { return f.err }

type RoyaltySuite struct {
	suite.Suite
	events  *eventstore.InMemoryStore
	service *Service
	ctx     context.Context
	authorX id.Address
	authorY id.Address
}

func TestRoyaltySuite(t *testing.T) {
	suite.Run(t, new(RoyaltySuite))
}

func (s *RoyaltySuite) SetupTest() {
	s.events = eventstore.NewInMemoryStore()
	s.service = New(store.NewInMemory(),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithEvents(publisher.NewPublisher(s.events)),
	)
	s.ctx = testutil.CallerContext(testutil.Address(0xee), time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	s.authorX = testutil.Address(0x0a)
	s.authorY = testutil.Address(0x0b)
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func (s *RoyaltySuite) TestRegisterAndRead() {
	ruid, _, _ := testutil.Triple("creator", "work")
	src, _, _ := testutil.Triple("other", "origin")
	items := []models.Item{
		{Receiver: s.authorX, BPS: 2000},
		{Receiver: s.authorY, BPS: 1000, Source: &src},
	}

	chain, err := s.service.RegisterRoyaltyList(s.ctx, ruid, items)
	s.Require().NoError(err)
	s.Equal(testutil.Address(0xee), chain.RegisteredBy)

	got, err := s.service.GetRoyaltyList(context.Background(), ruid)
	s.Require().NoError(err)
	s.Equal(items, got.Items)

	receivers, shares, err := s.service.GetRoyaltyReceivers(context.Background(), ruid)
	s.Require().NoError(err)
	s.Equal([]id.Address{s.authorX, s.authorY}, receivers)
	s.Equal([]id.BPS{2000, 1000}, shares)

	ok, err := s.service.IsRegistered(context.Background(), ruid)
	s.Require().NoError(err)
	s.True(ok)

	emitted, err := s.events.ListByRUID(context.Background(), ruid)
	s.Require().NoError(err)
	s.Require().Len(emitted, 1)
	s.Equal(events.TypeRoyaltyRegistered, emitted[0].Type)
	s.Equal(testutil.Address(0xee), emitted[0].Actor)
}

func (s *RoyaltySuite) TestRegisterRejections() {
	ruid, _, _ := testutil.Triple("creator", "work")
	_, err := s.service.RegisterRoyaltyList(s.ctx, ruid, []models.Item{{Receiver: s.authorX, BPS: 100}})
	s.Require().NoError(err)

	fresh, _, _ := testutil.Triple("creator", "other work")
	cases := []struct {
		name  string
		ruid  id.RUID
		items []models.Item
		code  dErrors.Code
	}{
		{"duplicate", ruid, []models.Item{{Receiver: s.authorY, BPS: 1}}, dErrors.CodeAlreadyRegistered},
		{"empty", fresh, []models.Item{}, dErrors.CodeEmptyRoyaltyList},
		{"over 100%", fresh, []models.Item{{Receiver: s.authorX, BPS: 5001}, {Receiver: s.authorY, BPS: 5000}}, dErrors.CodeInvalidRoyaltyTotal},
		{"zero ruid", id.RUID{}, []models.Item{{Receiver: s.authorX, BPS: 1}}, dErrors.CodeInvalidKey},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.RegisterRoyaltyList(s.ctx, tc.ruid, tc.items)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, tc.code), "got %v", err)
		})
	}

	ok, err := s.service.IsRegistered(context.Background(), fresh)
	s.Require().NoError(err)
	s.False(ok)

	got, err := s.service.GetRoyaltyList(context.Background(), ruid)
	s.Require().NoError(err)
	s.Equal(s.authorX, got.Items[0].Receiver, "duplicate never overwrites")
}

func (s *RoyaltySuite) TestExactlyFullChain() {
	ruid, _, _ := testutil.Triple("creator", "work")
	_, err := s.service.RegisterRoyaltyList(s.ctx, ruid, []models.Item{
		{Receiver: s.authorX, BPS: 9999},
		{Receiver: s.authorY, BPS: 1},
	})
	s.Require().NoError(err)

	total, err := s.service.GetTotalRoyaltyAmount(context.Background(), ruid, ether(3))
	s.Require().NoError(err)
	s.Equal(ether(3).String(), total.String())
}

func (s *RoyaltySuite) TestAmounts() {
	ruid, _, _ := testutil.Triple("creator", "work")
	_, err := s.service.RegisterRoyaltyList(s.ctx, ruid, []models.Item{
		{Receiver: s.authorX, BPS: 3000},
		{Receiver: s.authorY, BPS: 2000},
		{Receiver: testutil.Address(0x0c), BPS: 1000},
	})
	s.Require().NoError(err)

	total, err := s.service.GetTotalRoyaltyAmount(context.Background(), ruid, ether(1))
	s.Require().NoError(err)
	s.Equal("600000000000000000", total.String())

	zero, err := s.service.GetTotalRoyaltyAmount(context.Background(), ruid, big.NewInt(0))
	s.Require().NoError(err)
	s.Equal(0, zero.Sign())

	split, err := s.service.Split(context.Background(), ruid, ether(1))
	s.Require().NoError(err)
	s.Require().Len(split.Payouts, 3)
	s.Equal("300000000000000000", split.Payouts[0].Amount.String())
	s.Equal("200000000000000000", split.Payouts[1].Amount.String())
	s.Equal("100000000000000000", split.Payouts[2].Amount.String())
	s.Equal(total.String(), split.Total.String())
	s.Equal(0, split.Drift.Sign())

	_, err = s.service.GetTotalRoyaltyAmount(context.Background(), ruid, big.NewInt(-1))
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	_, err = s.service.Split(context.Background(), ruid, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.GetTotalRoyaltyAmount(context.Background(), id.RUID{0x01}, ether(1))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	_, _, err = s.service.GetRoyaltyReceivers(context.Background(), id.RUID{0x01})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

// TestDerivativeScenario walks a registration, its derivative and their
// chains end to end.
func (s *RoyaltySuite) TestDerivativeScenario() {
	registry := copyright.New(copyrightstore.NewInMemory(), copyright.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	puidA := id.PUID(identity.HashString("author_a"))
	awidA := id.WUID(identity.HashString("work_a"))
	ruidA := identity.DeriveRUID(puidA, awidA)
	_, err := registry.RegisterCopyright(s.ctx, ruidA, puidA, []id.WUID{awidA}, "literature")
	s.Require().NoError(err)
	_, err = s.service.RegisterRoyaltyList(s.ctx, ruidA, []models.Item{{Receiver: s.authorX, BPS: 3000}})
	s.Require().NoError(err)

	puidB := id.PUID(identity.HashString("author_b"))
	awidB := id.WUID(identity.HashString("work_b"))
	ruidB := identity.DeriveRUID(puidB, awidB)
	_, err = registry.RegisterCopyright(s.ctx, ruidB, puidB, []id.WUID{awidB}, "art")
	s.Require().NoError(err)
	_, err = s.service.RegisterRoyaltyList(s.ctx, ruidB, []models.Item{
		{Receiver: s.authorX, BPS: 2000},
		{Receiver: s.authorY, BPS: 1000, Source: &ruidA},
	})
	s.Require().NoError(err)

	total, err := s.service.GetTotalRoyaltyAmount(context.Background(), ruidB, ether(1))
	s.Require().NoError(err)
	s.Equal("300000000000000000", total.String())

	chainB, err := s.service.GetRoyaltyList(context.Background(), ruidB)
	s.Require().NoError(err)
	hop, err := s.service.GetRoyaltyList(context.Background(), *chainB.Items[1].Source)
	s.Require().NoError(err)
	s.Equal(id.BPS(3000), hop.TotalBPS(), "callers resolve the next hop themselves")
}

func (s *RoyaltySuite) TestConcurrentRegistrationHasOneWinner() {
	ruid, _, _ := testutil.Triple("contested", "chain")
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
	)
	for i := range 30 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items := []models.Item{{Receiver: testutil.Address(byte(i + 1)), BPS: 100}}
			if _, err := s.service.RegisterRoyaltyList(s.ctx, ruid, items); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()
	s.Equal(int32(1), successes.Load())

	emitted, _ := s.events.ListByRUID(context.Background(), ruid)
	s.Len(emitted, 1)
}

func (s *RoyaltySuite) TestDroppedEventIsNotFatal() {
	svc := New(store.NewInMemory(), WithEvents(failingEmitter{err: events.ErrDropped}))
	ruid, _, _ := testutil.Triple("creator", "work")
	_, err := svc.RegisterRoyaltyList(s.ctx, ruid, []models.Item{{Receiver: s.authorX, BPS: 1}})
	s.NoError(err)

	svc = New(store.NewInMemory(), WithEvents(failingEmitter{err: errors.New("outbox down")}))
	_, err = svc.RegisterRoyaltyList(s.ctx, ruid, []models.Item{{Receiver: s.authorX, BPS: 1}})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
