package controllers

import (
	"net/http"

	"github.com/dcode-github/estate_listing_platform/backend/models"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userSearchResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func (a *App) SearchUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			writeMessage(w, http.StatusBadRequest, "Email is required")
			return
		}

		var user models.User
		err := a.Store.Users.FindOne(r.Context(), bson.M{"email": email}).Decode(&user)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				writeMessage(w, http.StatusNotFound, "User not found")
				return
			}
			log.Printf("Error searching user by email %s: %v", email, err)
			writeError(w, http.StatusInternalServerError, "Search failed", err)
			return
		}

		writeJSON(w, http.StatusOK, userSearchResponse{
			UserID: user.ID.Hex(),
			Email:  user.Email,
		})
	}
}
