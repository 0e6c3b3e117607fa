package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dcode-github/estate_listing_platform/backend/controllers"
	"github.com/dcode-github/estate_listing_platform/backend/models"
	"github.com/dcode-github/estate_listing_platform/backend/utils"
	log "github.com/sirupsen/logrus"
)

// UserLookup resolves a token subject to a stored user. Injected so the
// guard can be exercised without a live store.
type UserLookup func(ctx context.Context, userID string) (*models.User, error)

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"` + message + `"}`))
}

// AuthMiddleware validates the bearer token, resolves its subject to a user
// and stashes the user id in the request context.
func AuthMiddleware(tokens *utils.TokenManager, lookup UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenHeader := r.Header.Get("Authorization")
			if tokenHeader == "" {
				log.Printf("Missing Authorization header from request %s %s", r.Method, r.URL)
				writeUnauthorized(w, "No token provided")
				return
			}

			tokenParts := strings.Split(tokenHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				log.Printf("Invalid Authorization header format from request %s %s", r.Method, r.URL)
				writeUnauthorized(w, "No token provided")
				return
			}

			claims, err := tokens.ValidateJWT(tokenParts[1])
			if err != nil {
				log.Printf("Invalid or expired token: %v", err)
				writeUnauthorized(w, "Invalid token")
				return
			}

			user, err := lookup(r.Context(), claims.UserID)
			if err != nil || user == nil {
				log.Printf("Token subject %s does not resolve to a user", claims.UserID)
				writeUnauthorized(w, "Not authorized")
				return
			}

			ctx := context.WithValue(r.Context(), controllers.UserIDKey, user.ID.Hex())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
