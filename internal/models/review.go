package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a user-authored comment attached to exactly one listing at a
// time; the owning listing keeps the reference.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
