package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
)

const (
	signingKey = "ledger-signing-key"
	issuer     = "redart"
	audience   = "redart-api"
)

var (
	principal = id.Address{0xaa, 0xbb, 0xcc}
	issuedAt  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func TestIssuedTokenNamesThePrincipal(t *testing.T) {
	svc := NewJWTService(signingKey, issuer, audience, fixedClock(issuedAt))
	token, err := svc.GenerateAccessToken(principal, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	got, err := claims.Principal()
	require.NoError(t, err)
	assert.Equal(t, principal, got)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, issuedAt.Add(time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestGenerateRejectsZeroPrincipal(t *testing.T) {
	_, err := NewJWTService(signingKey, issuer, audience).GenerateAccessToken(id.Address{}, time.Hour)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestValidateTokenRejections(t *testing.T) {
	svc := NewJWTService(signingKey, issuer, audience, fixedClock(issuedAt))
	sign := func(s *JWTService) string {
		token, err := s.GenerateAccessToken(principal, time.Hour)
		require.NoError(t, err)
		return token
	}
	forge := func(method jwt.SigningMethod, key any, subject string) string {
		token, err := jwt.NewWithClaims(method, Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		}}).SignedString(key)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name    string
		token   string
		message string
	}{
		{"garbage", "not-a-token", "invalid token"},
		{"expired", sign(NewJWTService(signingKey, issuer, audience, fixedClock(issuedAt.Add(-2*time.Hour)))), "token has expired"},
		{"other audience", sign(NewJWTService(signingKey, issuer, "another-api", fixedClock(issuedAt))), "invalid token"},
		{"other issuer", sign(NewJWTService(signingKey, "someone", audience, fixedClock(issuedAt))), "invalid token"},
		{"other key", sign(NewJWTService("stolen", issuer, audience, fixedClock(issuedAt))), "invalid token"},
		{"unsigned", forge(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, principal.String()), "invalid token"},
		{"subject is a name", forge(jwt.SigningMethodHS256, []byte(signingKey), "alice"), "token subject is not a principal"},
		{"zero subject", forge(jwt.SigningMethodHS256, []byte(signingKey), id.Address{}.String()), "token subject is not a principal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestAdapterHandsCanonicalSubjectToMiddleware(t *testing.T) {
	svc := NewJWTService(signingKey, issuer, audience)
	token, err := svc.GenerateAccessToken(principal, time.Hour)
	require.NoError(t, err)

	claims, err := NewJWTServiceAdapter(svc).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, principal.String(), claims.Subject)
	assert.NotEmpty(t, claims.JTI)

	_, err = NewJWTServiceAdapter(svc).ValidateToken("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
