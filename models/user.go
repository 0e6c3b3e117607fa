package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recommendation is one entry in a user's received list. PropertyID is kept
// as the hex string the sender supplied; FromUser references the sender.
type Recommendation struct {
	PropertyID string             `bson:"propertyId" json:"propertyId"`
	FromUser   primitive.ObjectID `bson:"fromUser" json:"fromUser"`
}

type User struct {
	ID                      primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Email                   string               `bson:"email" json:"email"`
	Password                string               `bson:"password" json:"-"`
	Favorites               []primitive.ObjectID `bson:"favorites" json:"favorites"`
	RecommendationsReceived []Recommendation     `bson:"recommendationsReceived" json:"recommendationsReceived"`
	CreatedAt               time.Time            `bson:"createdAt" json:"createdAt"`
}
