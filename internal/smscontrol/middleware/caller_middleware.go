package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// CallerContextKey carries the authenticated domain.Caller.
	CallerContextKey = ContextKey("caller")
)

// CallerClaims are the identity attributes minted into the platform-issued
// caller token. The account service signs these; this service only verifies
// and never issues them.
type CallerClaims struct {
	Package     string   `json:"package"`
	UserID      int      `json:"user_id"`
	UID         int      `json:"uid"`
	TargetSdk   int      `json:"target_sdk"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// CallerIdentity authenticates requests with the platform caller token and
// puts the resulting domain.Caller on the request context.
func CallerIdentity(secret string, logger *slog.Logger) func(next http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(r.Context(), "Authorization header missing")
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.WarnContext(r.Context(), "Invalid Authorization header format")
				http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			claims := &CallerClaims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return key, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				logger.WarnContext(r.Context(), "Caller token validation failed", "error", err)
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			if claims.Package == "" {
				logger.WarnContext(r.Context(), "Caller token missing package claim")
				http.Error(w, "Invalid caller identity", http.StatusForbidden)
				return
			}

			caller := domain.Caller{
				Package:     claims.Package,
				UserID:      claims.UserID,
				UID:         claims.UID,
				TargetSdk:   claims.TargetSdk,
				Permissions: claims.Permissions,
			}

			ctx := context.WithValue(r.Context(), CallerContextKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFromContext retrieves the authenticated caller placed by
// CallerIdentity.
func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(CallerContextKey).(domain.Caller)
	return caller, ok
}
