package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"redart/internal/verification"
	id "redart/pkg/domain"
	"redart/pkg/platform/httputil"
	"redart/pkg/requestcontext"
)

// Verifier checks identity triples for minting flows.
type Verifier interface {
	Verify(ctx context.Context, ruid id.RUID, puid id.PUID, awid id.AWID) (*verification.Result, error)
}

type Handler struct {
	verifier Verifier
	logger   *slog.Logger
}

func New(verifier Verifier, logger *slog.Logger) *Handler {
	return &Handler{verifier: verifier, logger: logger}
}

// Register mounts POST /verify. Verification is public and read-only.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verify", h.HandleVerify)
}

// HandleVerify answers 200 with the registry status of a consistent triple
// and 422 copyright_mismatch otherwise.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[verification.VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	ruid, puid, awid := req.Parsed()

	result, err := h.verifier.Verify(ctx, ruid, puid, awid)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}
