// Package service is the royalty manager: a claim-once store of royalty
// chains keyed by RUID, plus the sale-time arithmetic over them.
//
// Chains are never resolved recursively. A line item's Source names another
// chain and callers follow it with further GetRoyaltyList calls.
package service

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"redart/internal/events"
	"redart/internal/royalty/metrics"
	"redart/internal/royalty/models"
	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/platform/auditlog"
	"redart/pkg/platform/sentinel"
	"redart/pkg/platform/tracing"
	txcontext "redart/pkg/platform/tx"
	"redart/pkg/requestcontext"
)

const tracerName = "redart/internal/royalty"

// Store persists chains. Create returns sentinel.ErrAlreadyUsed on a
// duplicate RUID; FindByRUID returns sentinel.ErrNotFound.
type Store interface {
	Create(ctx context.Context, chain *models.Chain) error
	FindByRUID(ctx context.Context, ruid id.RUID) (*models.Chain, error)
	Exists(ctx context.Context, ruid id.RUID) (bool, error)
}

type Service struct {
	store   Store
	tx      txcontext.Runner
	events  events.Emitter
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithEvents(e events.Emitter) Option {
	return func(s *Service) {
		s.events = e
	}
}

func WithTxRunner(r txcontext.Runner) Option {
	return func(s *Service) {
		s.tx = r
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tx:     txcontext.NoopRunner{},
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterRoyaltyList stores items as the royalty chain of ruid, verbatim and
// in order. A RUID gets exactly one chain.
func (s *Service) RegisterRoyaltyList(ctx context.Context, ruid id.RUID, items []models.Item) (*models.Chain, error) {
	start := time.Now()
	defer s.metrics.ObserveRegister(start)

	ctx, span := s.tracer.Start(ctx, "royalty.RegisterRoyaltyList", trace.WithAttributes(
		attribute.String("ruid", ruid.String()),
		attribute.Int("items", len(items)),
	))
	defer span.End()

	chain, err := models.NewChain(ruid, items, requestcontext.Caller(ctx), requestcontext.Now(ctx))
	if err != nil {
		s.metrics.IncRegistration(string(dErrors.CodeOf(err)))
		return nil, tracing.Fail(span, err)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Create(ctx, chain); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeAlreadyRegistered, "royalty list already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to register royalty list")
		}
		return events.Record(ctx, s.events, events.Event{
			Type:       events.TypeRoyaltyRegistered,
			RUID:       chain.RUID,
			Actor:      chain.RegisteredBy,
			OccurredAt: chain.RegisteredAt,
		})
	})
	if err != nil {
		s.metrics.IncRegistration(string(dErrors.CodeOf(err)))
		return nil, tracing.Fail(span, dErrors.AsDomain(err, "failed to register royalty list"))
	}

	s.metrics.IncRegistration("success")
	s.metrics.ObserveChainLength(len(chain.Items))
	auditlog.Log(ctx, s.logger, string(events.TypeRoyaltyRegistered),
		"ruid", chain.RUID.String(),
		"registered_by", chain.RegisteredBy.String(),
		"items", len(chain.Items),
		"total_bps", int(chain.TotalBPS()),
	)
	return chain, nil
}

// IsRegistered reports whether ruid has a royalty chain.
func (s *Service) IsRegistered(ctx context.Context, ruid id.RUID) (bool, error) {
	if ruid.IsZero() {
		return false, nil
	}
	ok, err := s.store.Exists(ctx, ruid)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check royalty list")
	}
	return ok, nil
}

// GetRoyaltyList returns the chain registered for ruid.
func (s *Service) GetRoyaltyList(ctx context.Context, ruid id.RUID) (*models.Chain, error) {
	if ruid.IsZero() {
		return nil, dErrors.New(dErrors.CodeNotFound, "royalty list not registered")
	}
	chain, err := s.store.FindByRUID(ctx, ruid)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "royalty list not registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load royalty list")
	}
	return chain, nil
}

// GetRoyaltyReceivers returns the chain as parallel receiver and share
// slices with the same indexes as GetRoyaltyList.
func (s *Service) GetRoyaltyReceivers(ctx context.Context, ruid id.RUID) ([]id.Address, []id.BPS, error) {
	chain, err := s.GetRoyaltyList(ctx, ruid)
	if err != nil {
		return nil, nil, err
	}
	receivers, shares := chain.Receivers()
	return receivers, shares, nil
}

// GetTotalRoyaltyAmount returns floor(salePrice * sum(bps) / 10000).
func (s *Service) GetTotalRoyaltyAmount(ctx context.Context, ruid id.RUID, salePrice *big.Int) (*big.Int, error) {
	if err := checkSalePrice(salePrice); err != nil {
		return nil, err
	}
	chain, err := s.GetRoyaltyList(ctx, ruid)
	if err != nil {
		return nil, err
	}
	s.metrics.IncQuote("total")
	return chain.TotalAmount(salePrice), nil
}

// Split divides salePrice along the chain of ruid, one floored payout per item.
func (s *Service) Split(ctx context.Context, ruid id.RUID, salePrice *big.Int) (*models.Split, error) {
	if err := checkSalePrice(salePrice); err != nil {
		return nil, err
	}
	chain, err := s.GetRoyaltyList(ctx, ruid)
	if err != nil {
		return nil, err
	}
	s.metrics.IncQuote("split")
	return chain.Split(salePrice), nil
}

func checkSalePrice(salePrice *big.Int) error {
	if salePrice == nil {
		return dErrors.New(dErrors.CodeValidation, "sale price is required")
	}
	if salePrice.Sign() < 0 {
		return dErrors.New(dErrors.CodeValidation, "sale price must not be negative")
	}
	return nil
}
