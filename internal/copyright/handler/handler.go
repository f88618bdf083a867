package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"redart/internal/copyright/models"
	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/platform/httputil"
	"redart/pkg/platform/middleware/auth"
	"redart/pkg/requestcontext"
)

// Service defines the copyright registry operations exposed over HTTP.
type Service interface {
	RegisterCopyright(ctx context.Context, ruid id.RUID, puid id.PUID, wuid []id.WUID, opusType string) (*models.Registration, error)
	IsRegistered(ctx context.Context, ruid id.RUID) (bool, error)
	GetRegistration(ctx context.Context, ruid id.RUID) (*models.Registration, error)
}

// Handler wires copyright endpoints to the registry service.
type Handler struct {
	service      Service
	jwtValidator auth.JWTValidator
	logger       *slog.Logger
}

// New constructs a copyright handler with its dependencies.
func New(service Service, jwtValidator auth.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{
		service:      service,
		jwtValidator: jwtValidator,
		logger:       logger,
	}
}

// Register mounts copyright endpoints on the router. Claims require a bearer
// token; lookups are public.
func (h *Handler) Register(r chi.Router) {
	r.With(auth.RequireAuth(h.jwtValidator, h.logger)).Post("/copyrights", h.HandleRegister)
	r.Get("/copyrights/{ruid}", h.HandleGet)
	r.Get("/copyrights/{ruid}/status", h.HandleStatus)
}

// HandleRegister handles POST /copyrights.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.RegisterCopyrightRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	ruid, puid, wuid := req.Parsed()

	reg, err := h.service.RegisterCopyright(ctx, ruid, puid, wuid, req.OpusType)
	if err != nil {
		h.logger.WarnContext(ctx, "copyright registration rejected",
			"request_id", requestID,
			"ruid", req.RUID,
			"caller", caller.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, reg)
}

// HandleGet handles GET /copyrights/{ruid}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ruid, err := id.ParseRUID(chi.URLParam(r, "ruid"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reg, err := h.service.GetRegistration(r.Context(), ruid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

// HandleStatus handles GET /copyrights/{ruid}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ruid, err := id.ParseRUID(chi.URLParam(r, "ruid"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ok, err := h.service.IsRegistered(r.Context(), ruid)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "registration status lookup failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"ruid", ruid.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.StatusResponse{RUID: ruid, Registered: ok})
}
