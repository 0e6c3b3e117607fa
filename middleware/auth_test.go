package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dcode-github/estate_listing_platform/backend/controllers"
	"github.com/dcode-github/estate_listing_platform/backend/models"
	"github.com/dcode-github/estate_listing_platform/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func guardFor(tokens *utils.TokenManager, lookup UserLookup) (http.Handler, *string) {
	var seenUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := r.Context().Value(controllers.UserIDKey).(string); ok {
			seenUserID = id
		}
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(tokens, lookup)(inner), &seenUserID
}

func responseMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Message
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	t.Parallel()

	tokens := utils.NewTokenManager([]byte("secret"), time.Hour)
	guard, _ := guardFor(tokens, func(ctx context.Context, id string) (*models.User, error) {
		t.Fatal("lookup must not be called")
		return nil, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	rr := httptest.NewRecorder()
	guard.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "No token provided", responseMessage(t, rr))
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	t.Parallel()

	tokens := utils.NewTokenManager([]byte("secret"), time.Hour)
	guard, _ := guardFor(tokens, func(ctx context.Context, id string) (*models.User, error) {
		return nil, errors.New("unused")
	})

	for _, header := range []string{"Basic abc", "Bearer", "Bearertoken"} {
		req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		guard.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "header %q", header)
		assert.Equal(t, "No token provided", responseMessage(t, rr), "header %q", header)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	t.Parallel()

	tokens := utils.NewTokenManager([]byte("secret"), time.Hour)
	guard, _ := guardFor(tokens, func(ctx context.Context, id string) (*models.User, error) {
		return nil, errors.New("unused")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.Header.Set("Authorization", "Bearer garbage.token.here")
	rr := httptest.NewRecorder()
	guard.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid token", responseMessage(t, rr))
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	t.Parallel()

	expired := utils.NewTokenManager([]byte("secret"), -1*time.Minute)
	tok, err := expired.GenerateJWT(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	tokens := utils.NewTokenManager([]byte("secret"), time.Hour)
	guard, _ := guardFor(tokens, func(ctx context.Context, id string) (*models.User, error) {
		return nil, errors.New("unused")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	guard.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid token", responseMessage(t, rr))
}

func TestAuthMiddleware_UnknownSubject(t *testing.T) {
	t.Parallel()

	tokens := utils.NewTokenManager([]byte("secret"), time.Hour)
	tok, err := tokens.GenerateJWT(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	guard, _ := guardFor(tokens, func(ctx context.Context, id string) (*models.User, error) {
		return nil, errors.New("no such user")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	guard.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Not authorized", responseMessage(t, rr))
}

func TestAuthMiddleware_Success(t *testing.T) {
	t.Parallel()

	userID := primitive.NewObjectID()
	tokens := utils.NewTokenManager([]byte("secret"), time.Hour)
	tok, err := tokens.GenerateJWT(userID.Hex())
	require.NoError(t, err)

	guard, seen := guardFor(tokens, func(ctx context.Context, id string) (*models.User, error) {
		require.Equal(t, userID.Hex(), id)
		return &models.User{ID: userID, Email: "a@example.com"}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	guard.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, userID.Hex(), *seen)
}
