package jwttoken

import (
	authmw "redart/pkg/platform/middleware/auth"
)

// JWTServiceAdapter satisfies authmw.JWTValidator. The subject handed to the
// middleware is the canonical lower-case form of the principal.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(raw string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(raw)
	if err != nil {
		return nil, err
	}
	principal, err := claims.Principal()
	if err != nil {
		return nil, err
	}
	return &authmw.JWTClaims{Subject: principal.String(), JTI: claims.ID}, nil
}
