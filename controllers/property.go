package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dcode-github/estate_listing_platform/backend/models"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (a *App) CreateProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requestUserID(r)
		if !ok {
			log.Println("User ID missing in context")
			writeMessage(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		var property models.Property
		if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
			log.Printf("Invalid request body: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		ownerID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			log.Printf("Invalid user ID in context %s: %v", userID, err)
			writeMessage(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		objectID := primitive.NewObjectID()
		property.ID = objectID
		property.PropId = objectID.Hex()
		property.CreatedBy = &ownerID
		if property.AvailableFrom.IsZero() {
			property.AvailableFrom = time.Now()
		}

		if _, err := a.Store.Properties.InsertOne(r.Context(), property); err != nil {
			log.Printf("Insert failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Create property failed", err)
			return
		}

		go a.invalidateFilterCache()

		writeJSON(w, http.StatusCreated, property)
	}
}

func (a *App) GetAllProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := buildListingQuery(r.URL.Query())

		cursor, err := a.Store.Properties.Find(r.Context(), query)
		if err != nil {
			log.Printf("Error fetching properties with query %+v: %v", query, err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch properties", err)
			return
		}
		defer cursor.Close(r.Context())

		properties := []models.Property{}
		if err := cursor.All(r.Context(), &properties); err != nil {
			log.Printf("Error decoding properties: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch properties", err)
			return
		}

		writeJSON(w, http.StatusOK, properties)
	}
}

func (a *App) GetPropertyByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", propertyID, err)
			writeMessage(w, http.StatusNotFound, "Property not found")
			return
		}

		var property models.Property
		err = a.Store.Properties.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&property)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				writeMessage(w, http.StatusNotFound, "Property not found")
				return
			}
			log.Printf("Error fetching property %s: %v", propertyID, err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch property", err)
			return
		}

		writeJSON(w, http.StatusOK, property)
	}
}

// loadOwnedProperty fetches the property and checks the requester owns it.
// Writes the response itself on failure; callers bail out on ok == false.
func (a *App) loadOwnedProperty(w http.ResponseWriter, r *http.Request, userID string) (models.Property, bool) {
	propertyID := mux.Vars(r)["id"]
	objID, err := primitive.ObjectIDFromHex(propertyID)
	if err != nil {
		log.Printf("Invalid property ID %s: %v", propertyID, err)
		writeMessage(w, http.StatusNotFound, "Property not found")
		return models.Property{}, false
	}

	var property models.Property
	err = a.Store.Properties.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			writeMessage(w, http.StatusNotFound, "Property not found")
			return models.Property{}, false
		}
		log.Printf("Error fetching property %s: %v", propertyID, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch property", err)
		return models.Property{}, false
	}

	// Imported records have no owner and stay immutable through the API.
	if property.CreatedBy == nil || property.CreatedBy.Hex() != userID {
		log.Printf("User %s is not the owner of property %s", userID, propertyID)
		writeMessage(w, http.StatusForbidden, "Not authorized")
		return models.Property{}, false
	}

	return property, true
}

func (a *App) UpdateProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requestUserID(r)
		if !ok {
			log.Println("User ID missing in context")
			writeMessage(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		var updateData map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
			log.Printf("Invalid update data: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid update data")
			return
		}

		property, ok := a.loadOwnedProperty(w, r, userID)
		if !ok {
			return
		}

		delete(updateData, "_id")
		delete(updateData, "propid")
		delete(updateData, "createdBy")

		// The server rejects an empty $set; nothing left to change means
		// the current record is already the answer.
		if len(updateData) == 0 {
			writeJSON(w, http.StatusOK, property)
			return
		}

		if af, ok := updateData["availableFrom"].(string); ok {
			t, err := time.Parse(time.RFC3339, af)
			if err == nil {
				updateData["availableFrom"] = t
			} else {
				log.Printf("Could not parse 'availableFrom' string '%s' as RFC3339 time: %v", af, err)
			}
		}

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var updated models.Property
		err := a.Store.Properties.FindOneAndUpdate(
			r.Context(),
			bson.M{"_id": property.ID},
			bson.M{"$set": updateData},
			opts,
		).Decode(&updated)
		if err != nil {
			log.Printf("Update failed for property %s: %v", property.ID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Update failed", err)
			return
		}

		go a.invalidateFilterCache()

		writeJSON(w, http.StatusOK, updated)
	}
}

func (a *App) DeleteProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requestUserID(r)
		if !ok {
			log.Println("User ID missing in context")
			writeMessage(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		property, ok := a.loadOwnedProperty(w, r, userID)
		if !ok {
			return
		}

		if _, err := a.Store.Properties.DeleteOne(r.Context(), bson.M{"_id": property.ID}); err != nil {
			log.Printf("Delete failed for property %s: %v", property.ID.Hex(), err)
			writeError(w, http.StatusInternalServerError, "Delete failed", err)
			return
		}

		go a.invalidateFilterCache()

		writeMessage(w, http.StatusOK, "Property deleted")
	}
}
