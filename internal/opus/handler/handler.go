package handler

import (
	"context"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"redart/internal/opus/models"
	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/platform/httputil"
	"redart/pkg/platform/middleware/auth"
	"redart/pkg/requestcontext"
)

// Service defines the artwork collection operations exposed over HTTP.
type Service interface {
	CreateCollection(ctx context.Context, params models.CollectionParams) (*models.Collection, error)
	GetCollection(ctx context.Context, collectionID uuid.UUID) (*models.Collection, uint64, error)
	MintArt(ctx context.Context, collectionID uuid.UUID, tokenURI string, ruid id.RUID, puid id.PUID, awid id.AWID) (*models.Token, error)
	GetToken(ctx context.Context, collectionID uuid.UUID, tokenID uint64) (*models.Token, error)
	RoyaltyInfo(ctx context.Context, collectionID uuid.UUID, tokenID uint64, salePrice *big.Int) (id.Address, *big.Int, error)
	OriginMetadata(ctx context.Context, collectionID uuid.UUID) (*models.Origin, id.BPS, error)
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

// Register mounts collection endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	requireAuth := auth.RequireAuth(h.jwtValidator, h.logger)
	r.With(requireAuth).Post("/collections", h.HandleCreate)
	r.Route("/collections/{id}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Get("/origin", h.HandleOrigin)
		r.With(requireAuth).Post("/tokens", h.HandleMint)
		r.Get("/tokens/{token}", h.HandleGetToken)
		r.Get("/tokens/{token}/royalty", h.HandleRoyalty)
	})
}

// HandleCreate handles POST /collections.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if requestcontext.Caller(ctx).IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.CreateCollectionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.service.CreateCollection(ctx, req.Params())
	if err != nil {
		h.logger.WarnContext(ctx, "collection creation rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, models.CollectionResponse{Collection: c, MetadataURI: c.MetadataURI()})
}

// HandleGet handles GET /collections/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := parseCollectionID(w, r)
	if !ok {
		return
	}
	c, supply, err := h.service.GetCollection(r.Context(), collectionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.CollectionResponse{
		Collection:  c,
		MetadataURI: c.MetadataURI(),
		TotalSupply: supply,
	})
}

// HandleOrigin handles GET /collections/{id}/origin.
func (h *Handler) HandleOrigin(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := parseCollectionID(w, r)
	if !ok {
		return
	}
	origin, fee, err := h.service.OriginMetadata(r.Context(), collectionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.OriginResponse{Origin: origin, RoyaltyFeeBPS: fee})
}

// HandleMint handles POST /collections/{id}/tokens.
func (h *Handler) HandleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if requestcontext.Caller(ctx).IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	collectionID, ok := parseCollectionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.MintRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	ruid, puid, awid := req.Parsed()
	token, err := h.service.MintArt(ctx, collectionID, req.TokenURI, ruid, puid, awid)
	if err != nil {
		h.logger.WarnContext(ctx, "mint rejected",
			"request_id", requestID,
			"collection_id", collectionID.String(),
			"ruid", ruid.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, token)
}

// HandleGetToken handles GET /collections/{id}/tokens/{token}.
func (h *Handler) HandleGetToken(w http.ResponseWriter, r *http.Request) {
	collectionID, tokenID, ok := parseTokenPath(w, r)
	if !ok {
		return
	}
	token, err := h.service.GetToken(r.Context(), collectionID, tokenID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, token)
}

// HandleRoyalty handles GET /collections/{id}/tokens/{token}/royalty?sale_price=.
func (h *Handler) HandleRoyalty(w http.ResponseWriter, r *http.Request) {
	collectionID, tokenID, ok := parseTokenPath(w, r)
	if !ok {
		return
	}
	price, err := id.ParseAmount(r.URL.Query().Get("sale_price"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	receiver, amount, err := h.service.RoyaltyInfo(r.Context(), collectionID, tokenID, price)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewRoyaltyInfoResponse(collectionID, tokenID, receiver, price, amount))
}

func parseCollectionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	collectionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid collection id"))
		return uuid.Nil, false
	}
	return collectionID, true
}

func parseTokenPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, uint64, bool) {
	collectionID, ok := parseCollectionID(w, r)
	if !ok {
		return uuid.Nil, 0, false
	}
	tokenID, err := strconv.ParseUint(chi.URLParam(r, "token"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid token id"))
		return uuid.Nil, 0, false
	}
	return collectionID, tokenID, true
}
