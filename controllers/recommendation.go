package controllers

import (
	"net/http"

	"github.com/dcode-github/estate_listing_platform/backend/models"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type recommendationSender struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Email string             `bson:"email" json:"email"`
}

type recommendationView struct {
	PropertyID string               `bson:"propertyId" json:"propertyId"`
	FromUser   recommendationSender `bson:"fromUser" json:"fromUser"`
}

func (a *App) RecommendProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fromUserID, ok := requestUserID(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		senderObjID, err := primitive.ObjectIDFromHex(fromUserID)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		vars := mux.Vars(r)
		recipientEmail := vars["recipientEmail"]
		propertyID := vars["propertyId"]

		var recipient models.User
		err = a.Store.Users.FindOne(r.Context(), bson.M{"email": recipientEmail}).Decode(&recipient)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				log.Printf("No such user: %s", recipientEmail)
				writeMessage(w, http.StatusNotFound, "Recipient not found")
				return
			}
			log.Printf("Error looking up recipient %s: %v", recipientEmail, err)
			writeError(w, http.StatusInternalServerError, "Recommendation failed", err)
			return
		}

		rec := models.Recommendation{
			PropertyID: propertyID,
			FromUser:   senderObjID,
		}

		// Guarded push: match only when this (property, sender) pair is not
		// already in the recipient's list, so the append and the duplicate
		// check are one atomic document update.
		res, err := a.Store.Users.UpdateOne(
			r.Context(),
			bson.M{
				"_id": recipient.ID,
				"recommendationsReceived": bson.M{
					"$not": bson.M{"$elemMatch": bson.M{"propertyId": propertyID, "fromUser": senderObjID}},
				},
			},
			bson.M{"$push": bson.M{"recommendationsReceived": rec}},
		)
		if err != nil {
			log.Printf("Failed to store recommendation for %s: %v", recipientEmail, err)
			writeError(w, http.StatusInternalServerError, "Recommendation failed", err)
			return
		}
		if res.MatchedCount == 0 {
			writeMessage(w, http.StatusConflict, "Property already recommended to this user by you.")
			return
		}

		writeMessage(w, http.StatusOK, "Property recommended successfully")
	}
}

func (a *App) GetRecommendations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requestUserID(r)
		if !ok {
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
				{Key: "$unwind", Value: "$recommendationsReceived"},
			},
			{
				{Key: "$lookup", Value: bson.M{
					"from":         "users",
					"localField":   "recommendationsReceived.fromUser",
					"foreignField": "_id",
					"as":           "sender",
				}},
			},
			{
				{Key: "$unwind", Value: "$sender"},
			},
			{
				{Key: "$project", Value: bson.M{
					"_id":        0,
					"propertyId": "$recommendationsReceived.propertyId",
					"fromUser": bson.M{
						"_id":   "$sender._id",
						"email": "$sender.email",
					},
				}},
			},
		}

		cursor, err := a.Store.Users.Aggregate(r.Context(), pipeline)
		if err != nil {
			log.Printf("Error aggregating recommendations for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch recommendations", err)
			return
		}
		defer cursor.Close(r.Context())

		recommendations := []recommendationView{}
		if err := cursor.All(r.Context(), &recommendations); err != nil {
			log.Printf("Error decoding recommendations for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch recommendations", err)
			return
		}

		writeJSON(w, http.StatusOK, recommendations)
	}
}
