// Package service maintains the derivation graph between registrations.
//
// Cycles are impossible by construction: an origin must already be
// registered, and when the derivative is registered too, the origin must have
// been registered first. Every edge therefore points strictly backwards in
// registration order, so no traversal is needed on write.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"redart/internal/copyright/metrics"
	cmodels "redart/internal/copyright/models"
	"redart/internal/events"
	"redart/internal/graph/models"
	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/platform/auditlog"
	"redart/pkg/platform/sentinel"
	"redart/pkg/platform/tracing"
	txcontext "redart/pkg/platform/tx"
	"redart/pkg/requestcontext"
)

const tracerName = "redart/internal/graph"

// Store persists edges. Create returns sentinel.ErrConflict for a duplicate
// edge and may return sentinel.ErrNotFound when the origin is unknown.
type Store interface {
	Create(ctx context.Context, edge *models.Edge) error
	ListOrigins(ctx context.Context, derivative id.RUID) ([]id.RUID, error)
	ListDerivatives(ctx context.Context, origin id.RUID) ([]id.RUID, error)
}

// Registry is the read side of the copyright registry.
type Registry interface {
	GetRegistration(ctx context.Context, ruid id.RUID) (*cmodels.Registration, error)
}

type Service struct {
	store    Store
	registry Registry
	tx       txcontext.Runner
	events   events.Emitter
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
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

func New(store Store, registry Registry, opts ...Option) *Service {
	s := &Service{
		store:    store,
		registry: registry,
		tx:       txcontext.NoopRunner{},
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LinkDerivative records that derivative builds on origin. The origin must be
// registered. The derivative need not be, but when it is, the origin must
// precede it.
func (s *Service) LinkDerivative(ctx context.Context, derivative, origin id.RUID) (*models.Edge, error) {
	start := time.Now()
	defer s.metrics.ObserveLink(start)

	ctx, span := s.tracer.Start(ctx, "graph.LinkDerivative", trace.WithAttributes(
		attribute.String("derivative", derivative.String()),
		attribute.String("origin", origin.String()),
	))
	defer span.End()

	edge, err := models.NewEdge(derivative, origin, requestcontext.Caller(ctx), requestcontext.Now(ctx))
	if err != nil {
		s.metrics.IncLink("invalid")
		return nil, tracing.Fail(span, err)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.checkOrdering(ctx, derivative, origin); err != nil {
			return err
		}
		if err := s.store.Create(ctx, edge); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrConflict):
				return dErrors.New(dErrors.CodeEdgeExists, "derivative already linked to origin")
			case errors.Is(err, sentinel.ErrNotFound):
				return dErrors.New(dErrors.CodeOriginNotRegistered, "origin copyright not registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to link derivative")
		}
		return events.Record(ctx, s.events, events.Event{
			Type:       events.TypeDerivativeLinked,
			RUID:       edge.Derivative,
			Origin:     &edge.Origin,
			Actor:      edge.LinkedBy,
			OccurredAt: edge.LinkedAt,
		})
	})
	if err != nil {
		s.metrics.IncLink(string(dErrors.CodeOf(err)))
		return nil, tracing.Fail(span, dErrors.AsDomain(err, "failed to link derivative"))
	}

	s.metrics.IncLink("success")
	auditlog.Log(ctx, s.logger, string(events.TypeDerivativeLinked),
		"derivative", edge.Derivative.String(),
		"origin", edge.Origin.String(),
		"linked_by", edge.LinkedBy.String(),
	)
	return edge, nil
}

func (s *Service) checkOrdering(ctx context.Context, derivative, origin id.RUID) error {
	originReg, err := s.registry.GetRegistration(ctx, origin)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return dErrors.New(dErrors.CodeOriginNotRegistered, "origin copyright not registered")
		}
		return err
	}

	derivReg, err := s.registry.GetRegistration(ctx, derivative)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil
		}
		return err
	}
	if !originReg.Precedes(derivReg) {
		return dErrors.New(dErrors.CodeOriginNotRegistered, "origin must precede derivative")
	}
	return nil
}

// GetOrigins returns the origins of derivative in link order. An unknown
// derivative has no origins.
func (s *Service) GetOrigins(ctx context.Context, derivative id.RUID) ([]id.RUID, error) {
	origins, err := s.store.ListOrigins(ctx, derivative)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list origins")
	}
	return origins, nil
}

// GetDerivatives returns the registrations linked to origin, in link order.
func (s *Service) GetDerivatives(ctx context.Context, origin id.RUID) ([]id.RUID, error) {
	derivatives, err := s.store.ListDerivatives(ctx, origin)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list derivatives")
	}
	return derivatives, nil
}
