package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "redart/pkg/domain"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*JWTClaims, error) {
	return v.claims, v.err
}

const principal = "0x1111111111111111111111111111111111111111"

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seen id.Address
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetCaller(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		header     string
		validator  stubValidator
		wantStatus int
	}{
		{"missing header", "", stubValidator{}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", stubValidator{}, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", stubValidator{err: errors.New("expired")}, http.StatusUnauthorized},
		{"subject not an address", "Bearer ok", stubValidator{claims: &JWTClaims{Subject: "alice"}}, http.StatusUnauthorized},
		{"zero address subject", "Bearer ok", stubValidator{claims: &JWTClaims{Subject: "0x0000000000000000000000000000000000000000"}}, http.StatusUnauthorized},
		{"valid token", "Bearer ok", stubValidator{claims: &JWTClaims{Subject: principal}}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = id.Address{}
			req := httptest.NewRequest(http.MethodPost, "/copyrights", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			RequireAuth(tt.validator, logger)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				want, err := id.ParseAddress(principal)
				require.NoError(t, err)
				assert.Equal(t, want, seen)
			} else {
				assert.True(t, seen.IsZero())
				assert.Contains(t, rec.Body.String(), `"error":"unauthorized"`)
			}
		})
	}
}
