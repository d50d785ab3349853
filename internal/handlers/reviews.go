package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Surajrawat7017/wanderlustt/internal/middleware"
	"github.com/Surajrawat7017/wanderlustt/internal/models"
)

// CreateReview inserts a review authored by the current user and appends
// its reference to the listing. The insert and the append are two
// separate store operations.
func CreateReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /listings/:id/reviews"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		listing, ok := findListingOr404(ctx, c, db, route)
		if !ok {
			return
		}

		rating, _ := strconv.Atoi(strings.TrimSpace(c.PostForm("review[rating]")))
		review := models.Review{
			Rating:    rating,
			Comment:   strings.TrimSpace(c.PostForm("review[comment]")),
			Author:    middleware.CurrentUser(c).ID,
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("reviews").InsertOne(ctx, review)
		if err != nil {
			log.Printf("[%s] insert failed: %v", route, err)
			renderError(c, http.StatusInternalServerError, "")
			return
		}

		reviewID, _ := res.InsertedID.(primitive.ObjectID)
		if _, err := db.Collection("listings").UpdateByID(ctx, listing.ID, bson.M{
			"$push": bson.M{"reviews": reviewID},
		}); err != nil {
			log.Printf("[%s] listing append failed: %v", route, err)
			renderError(c, http.StatusInternalServerError, "")
			return
		}

		setFlash(c, "success", "Review Added Successfully")
		c.Redirect(http.StatusFound, "/listings/"+listing.ID.Hex())
	}
}

// DeleteReview removes the review document and pulls its reference from
// the parent listing. The two operations are not transactional; a crash
// in between leaves a dangling reference the show view skips over.
func DeleteReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /listings/:id/reviews/:reviewId"

		listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			setFlash(c, "error", "Listing Not Found")
			c.Redirect(http.StatusFound, "/listings")
			return
		}

		reviewID, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
		if err != nil {
			setFlash(c, "error", "Review Not Found")
			c.Redirect(http.StatusFound, "/listings/"+listingID.Hex())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("reviews").DeleteOne(ctx, bson.M{"_id": reviewID}); err != nil {
			log.Printf("[%s] review delete failed: %v", route, err)
			renderError(c, http.StatusInternalServerError, "")
			return
		}

		if _, err := db.Collection("listings").UpdateByID(ctx, listingID, bson.M{
			"$pull": bson.M{"reviews": reviewID},
		}); err != nil {
			log.Printf("[%s] reference pull failed: %v", route, err)
			renderError(c, http.StatusInternalServerError, "")
			return
		}

		setFlash(c, "success", "Review Deleted Successfully")
		c.Redirect(http.StatusFound, "/listings/"+listingID.Hex())
	}
}
