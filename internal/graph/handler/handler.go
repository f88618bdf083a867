package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"redart/internal/graph/models"
	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/platform/httputil"
	"redart/pkg/platform/middleware/auth"
	"redart/pkg/requestcontext"
)

// Service defines the derivation graph operations exposed over HTTP.
type Service interface {
	LinkDerivative(ctx context.Context, derivative, origin id.RUID) (*models.Edge, error)
	GetOrigins(ctx context.Context, derivative id.RUID) ([]id.RUID, error)
	GetDerivatives(ctx context.Context, origin id.RUID) ([]id.RUID, error)
}

type Handler struct {
	service      Service
	jwtValidator auth.JWTValidator
	logger       *slog.Logger
}

func New(service Service, jwtValidator auth.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{
		service:      service,
		jwtValidator: jwtValidator,
		logger:       logger,
	}
}

// Register mounts graph endpoints under /copyrights/{ruid}.
func (h *Handler) Register(r chi.Router) {
	r.With(auth.RequireAuth(h.jwtValidator, h.logger)).Post("/copyrights/{ruid}/origins", h.HandleLink)
	r.Get("/copyrights/{ruid}/origins", h.HandleOrigins)
	r.Get("/copyrights/{ruid}/derivatives", h.HandleDerivatives)
}

// HandleLink handles POST /copyrights/{ruid}/origins; {ruid} is the derivative.
func (h *Handler) HandleLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if requestcontext.Caller(ctx).IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	derivative, err := id.ParseRUID(chi.URLParam(r, "ruid"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.LinkRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	edge, err := h.service.LinkDerivative(ctx, derivative, req.ParsedOrigin())
	if err != nil {
		h.logger.WarnContext(ctx, "derivative link rejected",
			"request_id", requestID,
			"derivative", derivative.String(),
			"origin", req.Origin,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, edge)
}

// HandleOrigins handles GET /copyrights/{ruid}/origins.
func (h *Handler) HandleOrigins(w http.ResponseWriter, r *http.Request) {
	h.relations(w, r, h.service.GetOrigins)
}

// HandleDerivatives handles GET /copyrights/{ruid}/derivatives.
func (h *Handler) HandleDerivatives(w http.ResponseWriter, r *http.Request) {
	h.relations(w, r, h.service.GetDerivatives)
}

func (h *Handler) relations(w http.ResponseWriter, r *http.Request, list func(context.Context, id.RUID) ([]id.RUID, error)) {
	ruid, err := id.ParseRUID(chi.URLParam(r, "ruid"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	related, err := list(r.Context(), ruid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.RelationsResponse{RUID: ruid, Related: related})
}
