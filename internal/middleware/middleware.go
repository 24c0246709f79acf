package middleware

import (
	"net/http"
	"strings"

	"github.com/CovertCollective/CC-Backend/internal/httputil"
	"github.com/CovertCollective/CC-Backend/internal/token"
	"github.com/CovertCollective/CC-Backend/internal/utils"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(bearer string) (token.Claims, error)
}

// AuthMiddleware extracts and verifies the bearer token from the
// Authorization header and puts the verified claims on the request context.
// A missing token is a 401; a token that fails verification is a 403,
// whether malformed, forged or expired.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer := bearerToken(r)
			if bearer == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			claims, err := verifier.Verify(bearer)
			if err != nil {
				httputil.RespondError(w, http.StatusForbidden, "Invalid or expired token.")
				return
			}

			ctx := utils.WithClaims(r.Context(), utils.Claims{
				ID:      claims.ID,
				Email:   claims.Email,
				IsAdmin: claims.IsAdmin,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware requires the verified caller to carry the admin flag. It
// must run after AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := utils.GetClaimsFromContext(r.Context())
		if !ok {
			httputil.RespondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		if !claims.IsAdmin {
			httputil.RespondError(w, http.StatusForbidden, "Admin access required.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// CORSMiddleware echoes the origin back when it is on the allow-list. A
// single "*" entry allows any origin.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			_, ok := allowed[origin]
			if origin != "" && (allowAll || ok) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin") // important for caches
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods",
					"GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers",
					"Content-Type, Authorization")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
