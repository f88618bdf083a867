package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "redart/pkg/domain"
	dErrors "redart/pkg/domain-errors"
)

// Claims carry the caller's principal address in the subject.
type Claims struct {
	jwt.RegisteredClaims
}

// Principal decodes the subject. A zero address is not a principal.
func (c *Claims) Principal() (id.Address, error) {
	addr, err := id.ParseAddress(c.Subject)
	if err != nil || addr.IsZero() {
		return id.Address{}, dErrors.New(dErrors.CodeUnauthorized, "token subject is not a principal")
	}
	return addr, nil
}

// JWTService signs and checks HS256 bearer tokens for ledger writers.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
	now        func() time.Time
}

// Option configures a JWTService.
type Option func(*JWTService)

// WithClock replaces time.Now for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewJWTService(signingKey, issuer, audience string, opts ...Option) *JWTService {
	s := &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateAccessToken signs a token naming principal as the caller.
func (s *JWTService) GenerateAccessToken(principal id.Address, ttl time.Duration) (string, error) {
	if principal.IsZero() {
		return "", dErrors.New(dErrors.CodeValidation, "principal is required")
	}
	issued := s.now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   principal.String(),
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
		ID:        uuid.NewString(),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// ValidateToken returns the claims of a well-signed, unexpired token for this
// issuer and audience whose subject is a principal address.
func (s *JWTService) ValidateToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
	case err != nil:
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if _, err := claims.Principal(); err != nil {
		return nil, err
	}
	return claims, nil
}
