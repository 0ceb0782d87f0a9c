package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// DecodeClaims extracts identity claims from an access token WITHOUT
// verifying its signature. The client never validates tokens; the backend is
// authoritative and rejects stale ones with 401. This exists purely so the
// shell can display who is logged in and when the token lapses.
func DecodeClaims(token string) (*domain.TokenClaims, error) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	claims := &domain.TokenClaims{}
	if v, ok := mapClaims["user_id"].(string); ok {
		claims.UserID = v
	}
	if v, ok := mapClaims["role"].(string); ok {
		claims.Role = v
	}
	if v, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = int64(v)
	}
	if v, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = int64(v)
	}
	return claims, nil
}
