package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type key string

const userIDKey key = "user_id"

// GetUserID returns the authenticated user id stored by JWTMiddleware.
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// WithUserID returns a context carrying the given user id. Intended for tests
// that exercise protected handlers without the full middleware chain.
func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// JWTMiddleware verifies the bearer token and exposes the verified user id
// through the request context. Expired tokens are reported separately from
// otherwise invalid ones; both are 401.
func JWTMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				authError(w, "token is missing")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})

			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					authError(w, "token has expired")
					return
				}
				authError(w, "invalid token")
				return
			}
			if !token.Valid {
				authError(w, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				authError(w, "invalid token claims")
				return
			}
			rawID, ok := claims["user_id"].(float64)
			if !ok {
				authError(w, "invalid token claims")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, int(rawID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
