// Package auth authenticates callers of mutating endpoints. The verified
// principal becomes the caller address that ledger services record as
// registeredBy.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
	"redart/pkg/platform/httputil"
	request "redart/pkg/platform/middleware/request"
	"redart/pkg/requestcontext"
)

// JWTValidator checks a raw bearer token.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims is the subset of token claims the middleware consumes.
type JWTClaims struct {
	Subject string // hex principal address
	JTI     string
}

// GetCaller returns the authenticated principal, zero when anonymous.
func GetCaller(ctx context.Context) id.Address {
	return requestcontext.Caller(ctx)
}

// rejection is why a request was refused; log is the reason recorded server side.
type rejection struct {
	log         string
	description string
}

func authenticate(r *http.Request, validator JWTValidator) (id.Address, *rejection, []any) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return id.Address{}, &rejection{"missing token", "missing or invalid Authorization header"}, nil
	}
	claims, err := validator.ValidateToken(raw)
	if err != nil {
		return id.Address{}, &rejection{"invalid token", "invalid or expired token"}, []any{"error", err}
	}
	caller, err := id.ParseAddress(claims.Subject)
	if err != nil || caller.IsZero() {
		return id.Address{}, &rejection{"subject is not a principal address", "token subject is not a valid address"},
			[]any{"subject", claims.Subject}
	}
	return caller, nil, nil
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token subject as the caller.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			caller, rej, attrs := authenticate(r, validator)
			if rej != nil {
				attrs = append(attrs, "request_id", request.GetRequestID(ctx), "path", r.URL.Path)
				logger.WarnContext(ctx, "unauthorized ledger write: "+rej.log, attrs...)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, rej.description))
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithCaller(ctx, caller)))
		})
	}
}
