package utils

import (
	"context"
)

type contextKey string

const ContextClaimsKey contextKey = "claims"

// Claims is the verified caller identity carried on the request context
// once the auth middleware has validated the bearer token.
type Claims struct {
	ID      int    `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, ContextClaimsKey, claims)
}

func GetClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(ContextClaimsKey).(Claims)
	return claims, ok
}
