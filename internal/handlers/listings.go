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

// Image reference used when a listing is created or updated without an
// upload. The placeholder names no file on disk.
const (
	placeholderImageName = "listingimage"
	placeholderImageURL  = "https://share.google/images/DYSSlhUDv7rUdK8ai"
)

func uploadURL(filename string) string {
	return "/uploads/" + filename
}

// buildListingFilter translates the index view's query params into a
// store filter: maxPrice keeps listings priced at or under the value,
// location matches as a case-insensitive substring. Values that fail to
// parse are ignored.
func buildListingFilter(maxPrice, location string) bson.M {
	filter := bson.M{}

	if value := strings.TrimSpace(maxPrice); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			filter["price"] = bson.M{"$lte": parsed}
		}
	}

	if value := strings.TrimSpace(location); value != "" {
		filter["location"] = bson.M{"$regex": value, "$options": "i"}
	}

	return filter
}

// GetListings renders the index view, optionally filtered by maxPrice
// and location. Sort order is store-native.
func GetListings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /listings"

		filter := buildListingFilter(c.Query("maxPrice"), c.Query("location"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("listings").Find(ctx, filter)
		if err != nil {
			log.Printf("[%s] db error: %v", route, err)
			renderError(c, http.StatusInternalServerError, "")
			return
		}
		defer cursor.Close(ctx)

		var listings []models.Listing
		if err := cursor.All(ctx, &listings); err != nil {
			log.Printf("[%s] decode error: %v", route, err)
			renderError(c, http.StatusInternalServerError, "")
			return
		}

		log.Printf("[%s] returning %d listings", route, len(listings))
		render(c, http.StatusOK, "index.html", gin.H{"listing_data": listings})
	}
}

// ReviewView pairs a review with its expanded author for the show view.
type ReviewView struct {
	models.Review
	Author models.User
}

// GetListing renders the show view with the owner, reviews and review
// authors expanded. A missing listing turns into an error notice plus a
// redirect back to the index, not a 404 body.
func GetListing(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /listings/:id"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		listing, ok := findListingOr404(ctx, c, db, route)
		if !ok {
			return
		}

		var owner models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": listing.Owner}).Decode(&owner); err != nil {
			log.Printf("[%s] owner lookup failed: %v", route, err)
		}

		reviews, err := expandReviews(ctx, db, listing.Reviews)
		if err != nil {
			log.Printf("[%s] review expansion failed: %v", route, err)
			renderError(c, http.StatusInternalServerError, "")
			return
		}

		render(c, http.StatusOK, "show.html", gin.H{
			"list":    listing,
			"owner":   owner,
			"reviews": reviews,
		})
	}
}

// NewListingPage renders the create form.
func NewListingPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "new.html", gin.H{})
	}
}

// CreateListing inserts a new listing owned by the current user. At most
// one image file is accepted; without one the placeholder reference is
// stored.
func CreateListing(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /listings"

		form, err := parseListingForm(c, uploadDir)
		if err != nil {
			log.Printf("[%s] form error: %v", route, err)
			renderError(c, http.StatusBadRequest, err.Error())
			return
		}

		image := models.Image{Filename: placeholderImageName, URL: placeholderImageURL}
		if form.ImageSet {
			image = models.Image{Filename: form.ImageFilename, URL: uploadURL(form.ImageFilename)}
		}

		listing := models.Listing{
			Title:       form.Title,
			Description: form.Description,
			Price:       form.Price,
			Location:    form.Location,
			Country:     form.Country,
			Owner:       middleware.CurrentUser(c).ID,
			Image:       image,
			Reviews:     []primitive.ObjectID{},
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("listings").InsertOne(ctx, listing); err != nil {
			log.Printf("[%s] insert failed: %v", route, err)
			renderError(c, http.StatusInternalServerError, "")
			return
		}

		setFlash(c, "success", "New Listing Created")
		c.Redirect(http.StatusFound, "/listings")
	}
}

// EditListingPage renders the edit form.
func EditListingPage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /listings/:id/edit"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		listing, ok := findListingOr404(ctx, c, db, route)
		if !ok {
			return
		}

		render(c, http.StatusOK, "edit.html", gin.H{"list": listing})
	}
}

// UpdateListing replaces a listing's mutable fields. Only the owner may
// update; the owner reference itself is never reassigned. The image is
// replaced only when a new file was uploaded, and the superseded upload
// is removed from disk afterwards.
func UpdateListing(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /listings/:id"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		listing, ok := findListingOr404(ctx, c, db, route)
		if !ok {
			return
		}

		if listing.Owner != middleware.CurrentUser(c).ID {
			setFlash(c, "error", "You do not have permission to edit this listing")
			c.Redirect(http.StatusFound, "/listings/"+listing.ID.Hex())
			return
		}

		form, err := parseListingForm(c, uploadDir)
		if err != nil {
			log.Printf("[%s] form error: %v", route, err)
			renderError(c, http.StatusBadRequest, err.Error())
			return
		}

		update := bson.M{
			"title":       form.Title,
			"description": form.Description,
			"price":       form.Price,
			"location":    form.Location,
			"country":     form.Country,
		}
		if form.ImageSet {
			update["image"] = models.Image{Filename: form.ImageFilename, URL: uploadURL(form.ImageFilename)}
		}

		if _, err := db.Collection("listings").UpdateByID(ctx, listing.ID, bson.M{"$set": update}); err != nil {
			log.Printf("[%s] update failed: %v", route, err)
			renderError(c, http.StatusInternalServerError, "")
			return
		}

		if form.ImageSet {
			if err := safeDeleteUpload(uploadDir, listing.Image.Filename); err != nil {
				log.Printf("[%s] stale upload cleanup failed: %v", route, err)
			}
		}

		setFlash(c, "success", "Listing Updated Successfully")
		c.Redirect(http.StatusFound, "/listings/"+listing.ID.Hex())
	}
}

// DeleteListing removes the listing document. Reviews keep their own
// documents and are left unreferenced; ownership is not checked here,
// only login.
func DeleteListing(db *mongo.Database, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /listings/:id"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if id, err := primitive.ObjectIDFromHex(c.Param("id")); err == nil {
			var listing models.Listing
			if err := db.Collection("listings").FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&listing); err == nil {
				if err := safeDeleteUpload(uploadDir, listing.Image.Filename); err != nil {
					log.Printf("[%s] upload cleanup failed: %v", route, err)
				}
			} else if err != mongo.ErrNoDocuments {
				log.Printf("[%s] delete failed: %v", route, err)
				renderError(c, http.StatusInternalServerError, "")
				return
			}
		}

		setFlash(c, "success", "Listing Deleted Successfully")
		c.Redirect(http.StatusFound, "/listings")
	}
}

// findListingOr404 loads the addressed listing. A malformed or unknown
// id sets an error notice and redirects to the index.
func findListingOr404(ctx context.Context, c *gin.Context, db *mongo.Database, route string) (models.Listing, bool) {
	var listing models.Listing

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err == nil {
		err = db.Collection("listings").FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	}
	if err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("[%s] listing lookup failed: %v", route, err)
		}
		setFlash(c, "error", "Listing Not Found")
		c.Redirect(http.StatusFound, "/listings")
		c.Abort()
		return models.Listing{}, false
	}

	return listing, true
}

// expandReviews fetches the referenced reviews and their authors,
// preserving the listing's reference order.
func expandReviews(ctx context.Context, db *mongo.Database, refs []primitive.ObjectID) ([]ReviewView, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	cursor, err := db.Collection("reviews").Find(ctx, bson.M{"_id": bson.M{"$in": refs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Review, len(reviews))
	authorIDs := make([]primitive.ObjectID, 0, len(reviews))
	for _, review := range reviews {
		byID[review.ID] = review
		authorIDs = append(authorIDs, review.Author)
	}

	authors := make(map[primitive.ObjectID]models.User, len(authorIDs))
	if len(authorIDs) > 0 {
		userCursor, err := db.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": authorIDs}})
		if err != nil {
			return nil, err
		}
		defer userCursor.Close(ctx)

		var users []models.User
		if err := userCursor.All(ctx, &users); err != nil {
			return nil, err
		}
		for _, user := range users {
			authors[user.ID] = user
		}
	}

	views := make([]ReviewView, 0, len(refs))
	for _, ref := range refs {
		review, ok := byID[ref]
		if !ok {
			// dangling reference left by a non-atomic detach
			continue
		}
		views = append(views, ReviewView{Review: review, Author: authors[review.Author]})
	}

	return views, nil
}
