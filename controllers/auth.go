package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dcode-github/estate_listing_platform/backend/models"
	"github.com/dcode-github/estate_listing_platform/backend/utils"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (a *App) RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			log.Printf("Error decoding registration payload: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if creds.Email == "" || creds.Password == "" {
			writeMessage(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		err := a.Store.Users.FindOne(r.Context(), bson.M{"email": creds.Email}).Err()
		if err == nil {
			log.Printf("User email already exists: %s", creds.Email)
			writeMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
		if err != mongo.ErrNoDocuments {
			log.Printf("Error checking existing user: %v", err)
			writeError(w, http.StatusInternalServerError, "User registration failed", err)
			return
		}

		hashedPwd, err := utils.HashPassword(creds.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			writeError(w, http.StatusInternalServerError, "User registration failed", err)
			return
		}

		user := models.User{
			ID:                      primitive.NewObjectID(),
			Email:                   creds.Email,
			Password:                hashedPwd,
			Favorites:               []primitive.ObjectID{},
			RecommendationsReceived: []models.Recommendation{},
			CreatedAt:               time.Now(),
		}

		if _, err := a.Store.Users.InsertOne(r.Context(), user); err != nil {
			// The unique email index catches registrations that raced past
			// the existence probe above.
			if mongo.IsDuplicateKeyError(err) {
				log.Printf("User email already exists: %s", creds.Email)
				writeMessage(w, http.StatusBadRequest, "User already exists")
				return
			}
			log.Printf("Error inserting user into the database: %v", err)
			writeError(w, http.StatusInternalServerError, "User registration failed", err)
			return
		}

		token, err := a.Tokens.GenerateJWT(user.ID.Hex())
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			writeError(w, http.StatusInternalServerError, "User registration failed", err)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}

func (a *App) LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			log.Printf("Error decoding login credentials: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid payload")
			return
		}

		var dbUser models.User
		err := a.Store.Users.FindOne(r.Context(), bson.M{"email": creds.Email}).Decode(&dbUser)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				log.Printf("Error looking up user %s: %v", creds.Email, err)
				writeError(w, http.StatusInternalServerError, "Login failed", err)
				return
			}
			log.Printf("Login for unknown email: %s", creds.Email)
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		if !utils.CheckPasswordHash(creds.Password, dbUser.Password) {
			log.Printf("Invalid credentials for user: %s", creds.Email)
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := a.Tokens.GenerateJWT(dbUser.ID.Hex())
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			writeError(w, http.StatusInternalServerError, "Login failed", err)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}
