package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	usernameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
		Options: options.Index().
			SetName("username_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating username_unique index")
	_, err := indexes.CreateOne(ctx, usernameIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: username index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: username_unique index created")
	return nil
}

func EnsureListingIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("listings").Indexes()

	ownerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}},
		Options: options.Index().SetName("owner_index"),
	}

	log.Println("EnsureListingIndexes: creating owner_index index")
	_, err := indexes.CreateOne(ctx, ownerIndex)
	if err != nil {
		log.Println("EnsureListingIndexes: owner index error:", err)
		return err
	}
	log.Println("EnsureListingIndexes: owner_index index created")
	return nil
}

func EnsureReviewIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("reviews").Indexes()

	authorIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "author", Value: 1}},
		Options: options.Index().SetName("author_index"),
	}

	log.Println("EnsureReviewIndexes: creating author_index index")
	_, err := indexes.CreateOne(ctx, authorIndex)
	if err != nil {
		log.Println("EnsureReviewIndexes: author index error:", err)
		return err
	}
	log.Println("EnsureReviewIndexes: author_index index created")
	return nil
}
