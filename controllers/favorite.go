package controllers

import (
	"net/http"

	"github.com/dcode-github/estate_listing_platform/backend/models"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type favoritesResponse struct {
	Message   string               `json:"message"`
	Favorites []primitive.ObjectID `json:"favorites"`
}

func (a *App) AddFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requestUserID(r)
		if !ok {
			log.Println("User ID missing in context")
			writeMessage(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		userObjID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		propertyIDHex := mux.Vars(r)["propertyId"]
		propertyObjID, err := primitive.ObjectIDFromHex(propertyIDHex)
		if err != nil {
			log.Printf("Invalid property ID format %s: %v", propertyIDHex, err)
			writeMessage(w, http.StatusBadRequest, "Invalid property ID format")
			return
		}

		// $addToSet keeps the favorites set duplicate free without a
		// read-modify-write round trip.
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var user models.User
		err = a.Store.Users.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": userObjID},
			bson.M{"$addToSet": bson.M{"favorites": propertyObjID}},
			opts,
		).Decode(&user)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				writeMessage(w, http.StatusNotFound, "User not found")
				return
			}
			log.Printf("Failed to add property %s to favorites: %v", propertyIDHex, err)
			writeError(w, http.StatusInternalServerError, "Failed to add favorite", err)
			return
		}

		writeJSON(w, http.StatusOK, favoritesResponse{
			Message:   "Property added to favorites",
			Favorites: user.Favorites,
		})
	}
}

func (a *App) GetFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requestUserID(r)
		if !ok {
			log.Println("User ID missing in context")
			writeMessage(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		userObjID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		pipeline := mongo.Pipeline{
			{
				{Key: "$match", Value: bson.M{"_id": userObjID}},
			},
			{
				{Key: "$lookup", Value: bson.M{
					"from":         "properties",
					"localField":   "favorites",
					"foreignField": "_id",
					"as":           "favoriteDetails",
				}},
			},
			{
				{Key: "$unwind", Value: "$favoriteDetails"},
			},
			{
				{Key: "$replaceRoot", Value: bson.M{"newRoot": "$favoriteDetails"}},
			},
		}

		cursor, err := a.Store.Users.Aggregate(r.Context(), pipeline)
		if err != nil {
			log.Printf("Failed to fetch favorite properties for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch favorites", err)
			return
		}
		defer cursor.Close(r.Context())

		properties := []models.Property{}
		if err := cursor.All(r.Context(), &properties); err != nil {
			log.Printf("Failed to decode favorite properties for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch favorites", err)
			return
		}

		writeJSON(w, http.StatusOK, properties)
	}
}

func (a *App) DeleteFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requestUserID(r)
		if !ok {
			log.Println("User ID missing in context")
			writeMessage(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		userObjID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		propertyIDHex := mux.Vars(r)["propertyId"]
		propertyObjID, err := primitive.ObjectIDFromHex(propertyIDHex)
		if err != nil {
			// An unparseable id can never be in the favorites set, so the
			// removal is the usual not-favorited no-op.
			log.Printf("Ignoring unparseable property ID %s on favorite removal: %v", propertyIDHex, err)
			writeMessage(w, http.StatusOK, "Property removed from favorites")
			return
		}

		// Removing a reference that was never favorited still succeeds.
		res, err := a.Store.Users.UpdateOne(
			r.Context(),
			bson.M{"_id": userObjID},
			bson.M{"$pull": bson.M{"favorites": propertyObjID}},
		)
		if err != nil {
			log.Printf("Failed to remove property %s from favorites: %v", propertyIDHex, err)
			writeError(w, http.StatusInternalServerError, "Failed to remove favorite", err)
			return
		}
		if res.MatchedCount == 0 {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}

		writeMessage(w, http.StatusOK, "Property removed from favorites")
	}
}
