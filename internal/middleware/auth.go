package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Surajrawat7017/wanderlustt/internal/models"
)

// SessionUserKey is the session value holding the authenticated user's id.
const SessionUserKey = "userId"

// ContextUserKey is the per-request context key holding the resolved *models.User.
const ContextUserKey = "currentUser"

// LoadCurrentUser resolves the session's user id to a user document and
// attaches it to the request context. Unauthenticated requests pass
// through untouched.
func LoadCurrentUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw, _ := session.Get(SessionUserKey).(string)
		if raw == "" {
			c.Next()
			return
		}

		userID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			log.Println("[AUTH] [ERROR] invalid session user id")
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			log.Println("[AUTH] [ERROR] session user lookup failed:", err)
			c.Next()
			return
		}

		c.Set(ContextUserKey, &user)
		c.Next()
	}
}

// RequireLogin halts requests that carry no authenticated user and sends
// the browser to the login page with an error notice.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextUserKey); !ok {
			session := sessions.Default(c)
			session.AddFlash("You must be logged in", "error")
			_ = session.Save()
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by LoadCurrentUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if value, ok := c.Get(ContextUserKey); ok {
		if user, ok := value.(*models.User); ok {
			return user
		}
	}
	return nil
}
