package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	copyrighthandler "redart/internal/copyright/handler"
	copyrightmetrics "redart/internal/copyright/metrics"
	copyrightservice "redart/internal/copyright/service"
	eventmetrics "redart/internal/events/metrics"
	"redart/internal/events/publisher"
	graphhandler "redart/internal/graph/handler"
	graphservice "redart/internal/graph/service"
	jwttoken "redart/internal/jwt_token"
	opushandler "redart/internal/opus/handler"
	opusmetrics "redart/internal/opus/metrics"
	opusservice "redart/internal/opus/service"
	"redart/internal/platform/config"
	"redart/internal/platform/httpserver"
	"redart/internal/platform/logger"
	platformmetrics "redart/internal/platform/metrics"
	royaltyhandler "redart/internal/royalty/handler"
	royaltymetrics "redart/internal/royalty/metrics"
	royaltyservice "redart/internal/royalty/service"
	httptransport "redart/internal/transport/http"
	"redart/internal/verification"
	verificationhandler "redart/internal/verification/handler"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	eventMetrics := eventmetrics.New()
	b, err := openBackends(ctx, cfg, log, eventMetrics)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			log.Warn("closing backends", "error", err)
		}
	}()

	pubOpts := []publisher.Option{publisher.WithLogger(log), publisher.WithMetrics(eventMetrics)}
	if !b.transactional() {
		pubOpts = append(pubOpts, publisher.WithAsyncBuffer(cfg.Events.AsyncBuffer))
	}
	pub := publisher.NewPublisher(b.events, pubOpts...)
	defer pub.Close()

	copyrightMetrics := copyrightmetrics.New()
	registry := copyrightservice.New(b.copyright,
		copyrightservice.WithLogger(log),
		copyrightservice.WithMetrics(copyrightMetrics),
		copyrightservice.WithEvents(pub),
		copyrightservice.WithTxRunner(b.tx),
	)
	graph := graphservice.New(b.graph, registry,
		graphservice.WithLogger(log),
		graphservice.WithMetrics(copyrightMetrics),
		graphservice.WithEvents(pub),
		graphservice.WithTxRunner(b.tx),
	)
	royalty := royaltyservice.New(b.royalty,
		royaltyservice.WithLogger(log),
		royaltyservice.WithMetrics(royaltymetrics.New()),
		royaltyservice.WithEvents(pub),
		royaltyservice.WithTxRunner(b.tx),
	)
	verifier := verification.NewVerifier(registry, verification.WithLogger(log))
	opus := opusservice.New(b.opus, registry, verifier, verification.RoyaltyInfo,
		opusservice.WithLogger(log),
		opusservice.WithMetrics(opusmetrics.New()),
		opusservice.WithEvents(pub),
		opusservice.WithTxRunner(b.tx),
	)

	jwtValidator := jwttoken.NewJWTServiceAdapter(
		jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience),
	)
	router := httptransport.NewRouter(log, platformmetrics.New(), b.healthChecks(),
		copyrighthandler.New(registry, jwtValidator, log),
		graphhandler.New(graph, jwtValidator, log),
		royaltyhandler.New(royalty, jwtValidator, log),
		verificationhandler.New(verifier, log),
		opushandler.New(opus, jwtValidator, log),
	)
	srv := httpserver.New(cfg.Addr, router, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting redart", "addr", cfg.Addr, "storage", b.kind, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if b.relay != nil {
		g.Go(func() error {
			if err := b.relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
