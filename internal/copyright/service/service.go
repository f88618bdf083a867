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
	"redart/internal/copyright/models"
	"redart/internal/events"
	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/platform/auditlog"
	"redart/pkg/platform/sentinel"
	"redart/pkg/platform/tracing"
	txcontext "redart/pkg/platform/tx"
	"redart/pkg/requestcontext"
)

const tracerName = "redart/internal/copyright"

// Store persists registrations. Implementations return sentinel.ErrAlreadyUsed
// on a duplicate RUID and sentinel.ErrNotFound on a missing one.
type Store interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByRUID(ctx context.Context, ruid id.RUID) (*models.Registration, error)
	Exists(ctx context.Context, ruid id.RUID) (bool, error)
}

// Service is the copyright registry: the authoritative set of claimed RUIDs.
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

// WithEvents sets the emitter for copyright_claimed notifications.
func WithEvents(e events.Emitter) Option {
	return func(s *Service) {
		s.events = e
	}
}

// WithTxRunner makes the registration and its event one unit of work.
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

// New constructs a Service.
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

// RegisterCopyright records that the caller claims ruid. The first successful
// claim wins; every later attempt fails with CodeAlreadyRegistered, even when
// it repeats the same data.
func (s *Service) RegisterCopyright(ctx context.Context, ruid id.RUID, puid id.PUID, wuid []id.WUID, opusType string) (*models.Registration, error) {
	start := time.Now()
	defer s.metrics.ObserveRegister(start)

	ctx, span := s.tracer.Start(ctx, "copyright.RegisterCopyright",
		trace.WithAttributes(attribute.String("ruid", ruid.String())))
	defer span.End()

	reg, err := models.NewRegistration(ruid, puid, wuid, opusType, requestcontext.Caller(ctx), requestcontext.Now(ctx))
	if err != nil {
		s.metrics.IncRegistration("invalid")
		return nil, tracing.Fail(span, err)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Create(ctx, reg); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeAlreadyRegistered, "copyright already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to register copyright")
		}
		return events.Record(ctx, s.events, events.Event{
			Type:       events.TypeCopyrightClaimed,
			RUID:       reg.RUID,
			Actor:      reg.RegisteredBy,
			OccurredAt: reg.RegisteredAt,
		})
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeAlreadyRegistered) {
			s.metrics.IncRegistration("already_registered")
		}
		return nil, tracing.Fail(span, dErrors.AsDomain(err, "failed to register copyright"))
	}

	s.metrics.IncRegistration("success")
	auditlog.Log(ctx, s.logger, string(events.TypeCopyrightClaimed),
		"ruid", reg.RUID.String(),
		"registered_by", reg.RegisteredBy.String(),
		"opus_type", reg.OpusType,
		"sequence", reg.Sequence,
	)
	return reg, nil
}

// IsRegistered reports whether ruid has been claimed. The zero RUID is never
// registered.
func (s *Service) IsRegistered(ctx context.Context, ruid id.RUID) (bool, error) {
	if ruid.IsZero() {
		return false, nil
	}
	ok, err := s.store.Exists(ctx, ruid)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check registration")
	}
	return ok, nil
}

// GetRegistration returns the stored record.
func (s *Service) GetRegistration(ctx context.Context, ruid id.RUID) (*models.Registration, error) {
	if ruid.IsZero() {
		return nil, dErrors.New(dErrors.CodeNotFound, "copyright not registered")
	}
	reg, err := s.store.FindByRUID(ctx, ruid)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "copyright not registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registration")
	}
	return reg, nil
}
