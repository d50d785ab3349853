package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is the stored upload reference embedded in a listing. URL is
// derived from Filename when an upload occurred, otherwise it points at
// the placeholder image.
type Image struct {
	Filename string `bson:"filename" json:"filename"`
	URL      string `bson:"url" json:"url"`
}

// Listing is a rentable property record. Owner is set once at creation
// and never reassigned. Reviews holds review references in insertion
// order.
type Listing struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Price       int64                `bson:"price" json:"price"`
	Location    string               `bson:"location" json:"location"`
	Country     string               `bson:"country" json:"country"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Image       Image                `bson:"image" json:"image"`
	Reviews     []primitive.ObjectID `bson:"reviews" json:"reviews"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
}
