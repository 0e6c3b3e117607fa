package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/dcode-github/estate_listing_platform/backend/config"
	"github.com/dcode-github/estate_listing_platform/backend/utils"
	"github.com/redis/go-redis/v9"
)

type ContextKey string

// UserIDKey carries the authenticated user's id hex through the request
// context, set by the auth middleware.
const UserIDKey = ContextKey("userID")

// App bundles the dependencies every handler needs. Cache may be nil.
type App struct {
	Store  *config.Store
	Tokens *utils.TokenManager
	Cache  *redis.Client
}

func NewApp(store *config.Store, tokens *utils.TokenManager, cache *redis.Client) *App {
	return &App{Store: store, Tokens: tokens, Cache: cache}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, status, resp)
}

func requestUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	return userID, ok
}
