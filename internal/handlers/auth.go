package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Surajrawat7017/wanderlustt/internal/middleware"
	"github.com/Surajrawat7017/wanderlustt/internal/models"
)

type SignupForm struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func SignupPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "signup.html", gin.H{})
	}
}

// Signup registers a new user with a bcrypt-hashed password and logs
// them in immediately. Registration failures, including the store's
// duplicate-username error, surface as a flash notice on the form.
func Signup(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /signup"

		var form SignupForm
		if err := c.ShouldBind(&form); err != nil {
			flashValidationError(c, err)
			c.Redirect(http.StatusFound, "/signup")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[%s] password hash failed: %v", route, err)
			renderError(c, http.StatusInternalServerError, "")
			return
		}

		user := models.User{
			Username:     strings.TrimSpace(form.Username),
			Email:        strings.ToLower(strings.TrimSpace(form.Email)),
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			log.Printf("[%s] insert failed: %v", route, err)
			// the store's duplicate-username error is shown verbatim
			setFlash(c, "error", err.Error())
			c.Redirect(http.StatusFound, "/signup")
			return
		}

		id, _ := res.InsertedID.(primitive.ObjectID)
		logIn(c, id)

		log.Printf("[%s] user registered: %s", route, user.Username)
		setFlash(c, "success", "Welcome to Wanderlust!")
		c.Redirect(http.StatusFound, "/listings")
	}
}

func LoginPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "login.html", gin.H{})
	}
}

// Login checks the submitted credentials against the stored hash. Any
// failure sends the browser back to the form with an error notice.
func Login(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /login"

		var form LoginForm
		if err := c.ShouldBind(&form); err != nil {
			flashValidationError(c, err)
			c.Redirect(http.StatusFound, "/login")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"username": strings.TrimSpace(form.Username)}).Decode(&user)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				log.Printf("[%s] user lookup failed: %v", route, err)
				renderError(c, http.StatusInternalServerError, "")
				return
			}
			setFlash(c, "error", "Password or username is incorrect")
			c.Redirect(http.StatusFound, "/login")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
			log.Printf("[%s] invalid credentials for %s", route, user.Username)
			setFlash(c, "error", "Password or username is incorrect")
			c.Redirect(http.StatusFound, "/login")
			return
		}

		logIn(c, user.ID)

		log.Printf("[%s] login succeeded: %s", route, user.Username)
		setFlash(c, "success", "Welcome back!")
		c.Redirect(http.StatusFound, "/listings")
	}
}

// Logout terminates the server-side session.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		session.Clear()
		if err := session.Save(); err != nil {
			log.Println("[GET /logout] session clear failed:", err)
		}

		setFlash(c, "success", "Logged you out!")
		c.Redirect(http.StatusFound, "/listings")
	}
}

func logIn(c *gin.Context, userID primitive.ObjectID) {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, userID.Hex())
	if err := session.Save(); err != nil {
		log.Println("[AUTH] [ERROR] session save failed:", err)
	}
}

// flashValidationError turns binding failures into field-level flash
// notices.
func flashValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := strings.ToLower(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		setFlash(c, "error", strings.Join(details, ", "))
		return
	}

	setFlash(c, "error", "invalid form submission")
}
