package middleware

import (
	"context"
	"crypto/rsa"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	EmailKey  contextKey = "email"
	RoleKey   contextKey = "role"
)

const denylistKeyPrefix = "denylist:"

// AuthMiddleware verifies system JWTs (RS256), rejects denylisted tokens,
// and gates handlers on the caller's role.
type AuthMiddleware struct {
	publicKey *rsa.PublicKey
	cache     ports.TokenCache
}

func NewAuthMiddleware(publicKey *rsa.PublicKey, cache ports.TokenCache) *AuthMiddleware {
	return &AuthMiddleware{
		publicKey: publicKey,
		cache:     cache,
	}
}

// RequireRole authenticates the request and rejects callers whose role is
// not in roles. The user's id, email, and role land in the request context.
func (m *AuthMiddleware) RequireRole(roles []string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "invalid authorization header", http.StatusUnauthorized)
			return
		}

		tokenString := parts[1]

		if m.cache != nil {
			n, err := m.cache.Exists(r.Context(), denylistKeyPrefix+tokenString).Result()
			if err != nil {
				// Fail open on Redis trouble: the signature check below
				// still stands between us and forged tokens.
				log.Printf("auth: denylist check failed: %v", err)
			} else if n > 0 {
				http.Error(w, "token revoked", http.StatusUnauthorized)
				return
			}
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.publicKey, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "invalid token claims", http.StatusUnauthorized)
			return
		}

		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			http.Error(w, "invalid token: missing user ID", http.StatusUnauthorized)
			return
		}

		email, ok := claims["email"].(string)
		if !ok || email == "" {
			http.Error(w, "invalid token: missing email", http.StatusUnauthorized)
			return
		}

		userRole, ok := claims["role"].(string)
		if !ok || userRole == "" {
			http.Error(w, "invalid token: missing role", http.StatusUnauthorized)
			return
		}

		allowed := false
		for _, role := range roles {
			if userRole == role {
				allowed = true
				break
			}
		}
		if !allowed {
			log.Printf("auth: role mismatch: required one of %v, got %s", roles, userRole)
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, EmailKey, email)
		ctx = context.WithValue(ctx, RoleKey, userRole)

		next(w, r.WithContext(ctx))
	}
}
