// Package service runs artwork collections: an owner creates a collection
// with a royalty rate and optionally an origin work, then mints artworks
// whose (ruid, puid, awid) triple must verify.
package service

import (
	"context"
	"errors"
	"log/slog"
	"math/big"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	cmodels "redart/internal/copyright/models"
	"redart/internal/events"
	"redart/internal/opus/metrics"
	"redart/internal/opus/models"
	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/platform/auditlog"
	"redart/pkg/platform/sentinel"
	"redart/pkg/platform/tracing"
	txcontext "redart/pkg/platform/tx"
	"redart/pkg/requestcontext"
)

const tracerName = "redart/internal/opus"

// Store persists collections and tokens. AppendToken assigns the token id.
// Lookups return sentinel.ErrNotFound.
type Store interface {
	CreateCollection(ctx context.Context, c *models.Collection) error
	FindCollection(ctx context.Context, collectionID uuid.UUID) (*models.Collection, error)
	AppendToken(ctx context.Context, t *models.Token) error
	FindToken(ctx context.Context, collectionID uuid.UUID, tokenID uint64) (*models.Token, error)
	CountTokens(ctx context.Context, collectionID uuid.UUID) (uint64, error)
}

// Registry resolves a collection's origin work to its registrant.
type Registry interface {
	GetRegistration(ctx context.Context, ruid id.RUID) (*cmodels.Registration, error)
}

// TripleVerifier checks that a ruid derives from puid and awid.
type TripleVerifier interface {
	VerifyTriple(ruid id.RUID, puid id.PUID, awid id.AWID) error
}

// RoyaltyCalculator applies a basis-point rate to a sale price.
type RoyaltyCalculator func(receiver id.Address, bps id.BPS, salePrice *big.Int) (id.Address, *big.Int, error)

type Service struct {
	store    Store
	registry Registry
	verifier TripleVerifier
	royalty  RoyaltyCalculator
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

func New(store Store, registry Registry, verifier TripleVerifier, royalty RoyaltyCalculator, opts ...Option) *Service {
	s := &Service{
		store:    store,
		registry: registry,
		verifier: verifier,
		royalty:  royalty,
		tx:       txcontext.NoopRunner{},
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCollection creates a collection owned by the caller. When an origin
// is given it must be registered; its registrant becomes the origin author.
func (s *Service) CreateCollection(ctx context.Context, params models.CollectionParams) (*models.Collection, error) {
	ctx, span := s.tracer.Start(ctx, "opus.CreateCollection")
	defer span.End()

	c, err := models.NewCollection(params, requestcontext.Caller(ctx), requestcontext.Now(ctx))
	if err != nil {
		return nil, tracing.Fail(span, err)
	}
	span.SetAttributes(attribute.String("collection_id", c.ID.String()))

	if c.Origin != nil {
		reg, err := s.registry.GetRegistration(ctx, c.Origin.RUID)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				return nil, tracing.Fail(span, dErrors.New(dErrors.CodeOriginNotRegistered, "origin is not registered"))
			}
			return nil, tracing.Fail(span, dErrors.AsDomain(err, "failed to resolve origin"))
		}
		c.Origin.Author = reg.RegisteredBy
	}

	if err := s.store.CreateCollection(ctx, c); err != nil {
		return nil, tracing.Fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create collection"))
	}

	s.metrics.IncCollection()
	auditlog.Log(ctx, s.logger, "collection_created",
		"collection_id", c.ID.String(),
		"owner", c.Owner.String(),
		"royalty_fee_bps", int(c.RoyaltyFeeBPS),
	)
	return c, nil
}

// GetCollection returns a collection and the number of tokens minted in it.
func (s *Service) GetCollection(ctx context.Context, collectionID uuid.UUID) (*models.Collection, uint64, error) {
	c, err := s.findCollection(ctx, collectionID)
	if err != nil {
		return nil, 0, err
	}
	supply, err := s.store.CountTokens(ctx, collectionID)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count tokens")
	}
	return c, supply, nil
}

// MintArt mints the next token of a collection. Only the collection owner
// may mint, and the triple must verify.
func (s *Service) MintArt(ctx context.Context, collectionID uuid.UUID, tokenURI string, ruid id.RUID, puid id.PUID, awid id.AWID) (*models.Token, error) {
	ctx, span := s.tracer.Start(ctx, "opus.MintArt", trace.WithAttributes(
		attribute.String("collection_id", collectionID.String()),
		attribute.String("ruid", ruid.String()),
	))
	defer span.End()

	token, err := s.mint(ctx, collectionID, tokenURI, ruid, puid, awid)
	if err != nil {
		s.metrics.IncMint(string(dErrors.CodeOf(err)))
		return nil, tracing.Fail(span, err)
	}
	s.metrics.IncMint("success")
	auditlog.Log(ctx, s.logger, string(events.TypeArtMinted),
		"collection_id", collectionID.String(),
		"token_id", token.TokenID,
		"ruid", ruid.String(),
		"owner", token.Owner.String(),
	)
	return token, nil
}

func (s *Service) mint(ctx context.Context, collectionID uuid.UUID, tokenURI string, ruid id.RUID, puid id.PUID, awid id.AWID) (*models.Token, error) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is required")
	}
	uri, err := models.ValidateTokenURI(tokenURI)
	if err != nil {
		return nil, err
	}

	c, err := s.findCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if c.Owner != caller {
		return nil, dErrors.New(dErrors.CodeForbidden, "caller is not the owner")
	}
	if err := s.verifier.VerifyTriple(ruid, puid, awid); err != nil {
		return nil, err
	}

	token := &models.Token{
		CollectionID: collectionID,
		URI:          uri,
		RUID:         ruid,
		Owner:        caller,
		MintedAt:     requestcontext.Now(ctx),
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.AppendToken(ctx, token); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "collection not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mint token")
		}
		return events.Record(ctx, s.events, events.Event{
			Type:       events.TypeArtMinted,
			RUID:       ruid,
			Actor:      caller,
			Collection: collectionID.String(),
			TokenID:    token.TokenID,
			OccurredAt: token.MintedAt,
		})
	})
	if err != nil {
		return nil, dErrors.AsDomain(err, "failed to mint token")
	}
	return token, nil
}

// GetToken returns a minted token.
func (s *Service) GetToken(ctx context.Context, collectionID uuid.UUID, tokenID uint64) (*models.Token, error) {
	t, err := s.store.FindToken(ctx, collectionID, tokenID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "invalid token ID")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load token")
	}
	return t, nil
}

// TokenRUID returns the registration id an artwork was minted under.
func (s *Service) TokenRUID(ctx context.Context, collectionID uuid.UUID, tokenID uint64) (id.RUID, error) {
	t, err := s.GetToken(ctx, collectionID, tokenID)
	if err != nil {
		return id.RUID{}, err
	}
	return t.RUID, nil
}

// TokenURI returns the metadata location an artwork was minted with.
func (s *Service) TokenURI(ctx context.Context, collectionID uuid.UUID, tokenID uint64) (string, error) {
	t, err := s.GetToken(ctx, collectionID, tokenID)
	if err != nil {
		return "", err
	}
	return t.URI, nil
}

// RoyaltyInfo quotes the collection-wide royalty for a sale of tokenID. The
// owner receives floor(salePrice * fee / 10000) whether or not the token
// has been minted.
func (s *Service) RoyaltyInfo(ctx context.Context, collectionID uuid.UUID, tokenID uint64, salePrice *big.Int) (id.Address, *big.Int, error) {
	c, err := s.findCollection(ctx, collectionID)
	if err != nil {
		return id.Address{}, nil, err
	}
	return s.royalty(c.Owner, c.RoyaltyFeeBPS, salePrice)
}

// MetadataURI returns ipfs://<metadata cid> for a collection.
func (s *Service) MetadataURI(ctx context.Context, collectionID uuid.UUID) (string, error) {
	c, err := s.findCollection(ctx, collectionID)
	if err != nil {
		return "", err
	}
	return c.MetadataURI(), nil
}

// OriginMetadata returns the origin work, its author and the collection
// royalty rate. NotFound when the collection has no origin.
func (s *Service) OriginMetadata(ctx context.Context, collectionID uuid.UUID) (*models.Origin, id.BPS, error) {
	c, err := s.findCollection(ctx, collectionID)
	if err != nil {
		return nil, 0, err
	}
	if c.Origin == nil {
		return nil, 0, dErrors.New(dErrors.CodeNotFound, "collection has no origin")
	}
	return c.Origin, c.RoyaltyFeeBPS, nil
}

func (s *Service) findCollection(ctx context.Context, collectionID uuid.UUID) (*models.Collection, error) {
	c, err := s.store.FindCollection(ctx, collectionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "collection not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load collection")
	}
	return c, nil
}
