package handler

import (
	"context"
	"log/slog"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"

	"redart/internal/royalty/models"
	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/platform/httputil"
	"redart/pkg/platform/middleware/auth"
	"redart/pkg/requestcontext"
)

// Service defines the royalty manager operations exposed over HTTP.
type Service interface {
	RegisterRoyaltyList(ctx context.Context, ruid id.RUID, items []models.Item) (*models.Chain, error)
	IsRegistered(ctx context.Context, ruid id.RUID) (bool, error)
	GetRoyaltyList(ctx context.Context, ruid id.RUID) (*models.Chain, error)
	GetRoyaltyReceivers(ctx context.Context, ruid id.RUID) ([]id.Address, []id.BPS, error)
	GetTotalRoyaltyAmount(ctx context.Context, ruid id.RUID, salePrice *big.Int) (*big.Int, error)
	Split(ctx context.Context, ruid id.RUID, salePrice *big.Int) (*models.Split, error)
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

// Register mounts royalty endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/royalties/{ruid}", func(r chi.Router) {
		r.With(auth.RequireAuth(h.jwtValidator, h.logger)).Post("/", h.HandleRegister)
		r.Get("/", h.HandleGet)
		r.Get("/status", h.HandleStatus)
		r.Get("/receivers", h.HandleReceivers)
		r.Get("/total", h.HandleTotal)
		r.Get("/split", h.HandleSplit)
	})
}

// HandleRegister handles POST /royalties/{ruid}.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if requestcontext.Caller(ctx).IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	ruid, err := id.ParseRUID(chi.URLParam(r, "ruid"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.RegisterRoyaltyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	chain, err := h.service.RegisterRoyaltyList(ctx, ruid, req.ParsedItems())
	if err != nil {
		h.logger.WarnContext(ctx, "royalty registration rejected",
			"request_id", requestID,
			"ruid", ruid.String(),
			"items", len(req.Items),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, chain)
}

// HandleGet handles GET /royalties/{ruid}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ruid, ok := parseRUID(w, r)
	if !ok {
		return
	}
	chain, err := h.service.GetRoyaltyList(r.Context(), ruid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, chain)
}

// HandleReceivers handles GET /royalties/{ruid}/receivers.
func (h *Handler) HandleReceivers(w http.ResponseWriter, r *http.Request) {
	ruid, ok := parseRUID(w, r)
	if !ok {
		return
	}
	receivers, shares, err := h.service.GetRoyaltyReceivers(r.Context(), ruid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ReceiversResponse{RUID: ruid, Receivers: receivers, BPS: shares})
}

// HandleTotal handles GET /royalties/{ruid}/total?sale_price=.
func (h *Handler) HandleTotal(w http.ResponseWriter, r *http.Request) {
	ruid, ok := parseRUID(w, r)
	if !ok {
		return
	}
	price, err := id.ParseAmount(r.URL.Query().Get("sale_price"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	amount, err := h.service.GetTotalRoyaltyAmount(r.Context(), ruid, price)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewAmountResponse(ruid, price, amount))
}

// HandleSplit handles GET /royalties/{ruid}/split?sale_price=.
func (h *Handler) HandleSplit(w http.ResponseWriter, r *http.Request) {
	ruid, ok := parseRUID(w, r)
	if !ok {
		return
	}
	price, err := id.ParseAmount(r.URL.Query().Get("sale_price"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	split, err := h.service.Split(r.Context(), ruid, price)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewSplitResponse(split))
}

func parseRUID(w http.ResponseWriter, r *http.Request) (id.RUID, bool) {
	ruid, err := id.ParseRUID(chi.URLParam(r, "ruid"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.RUID{}, false
	}
	return ruid, true
}

// HandleStatus handles GET /royalties/{ruid}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ruid, err := id.ParseRUID(chi.URLParam(r, "ruid"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ok, err := h.service.IsRegistered(r.Context(), ruid)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "royalty status lookup failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"ruid", ruid.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.StatusResponse{RUID: ruid, Registered: ok})
}
