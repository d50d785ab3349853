package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/mongo/mongodriver"
	"github.com/gin-gonic/gin"

	"github.com/Surajrawat7017/wanderlustt/internal/config"
	"github.com/Surajrawat7017/wanderlustt/internal/database"
	"github.com/Surajrawat7017/wanderlustt/internal/handlers"
	"github.com/Surajrawat7017/wanderlustt/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureListingIndexes(db); err != nil {
		log.Printf("listing index warning: %v", err)
	}
	if err := database.EnsureReviewIndexes(db); err != nil {
		log.Printf("review index warning: %v", err)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(handlers.Recover()))

	r.LoadHTMLGlob("templates/**/*")
	r.Static("/public", "./public")
	r.Static("/uploads", config.AppEnv.UploadDir)

	maxAge := int(config.AppEnv.SessionTTL.Seconds())
	store := mongodriver.NewStore(db.Collection("sessions"), maxAge, true, []byte(config.AppEnv.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("wanderlust.sid", store))
	r.Use(middleware.LoadCurrentUser(db))

	r.GET("/", handlers.Home())

	r.GET("/signup", handlers.SignupPage())
	r.POST("/signup", handlers.Signup(db))
	r.GET("/login", handlers.LoginPage())
	r.POST("/login", handlers.Login(db))
	r.GET("/logout", handlers.Logout())

	r.GET("/listings", handlers.GetListings(db))
	r.GET("/listings/new", middleware.RequireLogin(), handlers.NewListingPage())
	r.GET("/listings/:id", handlers.GetListing(db))
	r.GET("/listings/:id/edit", middleware.RequireLogin(), handlers.EditListingPage(db))

	auth := r.Group("/")
	auth.Use(middleware.RequireLogin())
	{
		auth.POST("/listings", handlers.CreateListing(db, config.AppEnv.UploadDir))
		auth.PUT("/listings/:id", handlers.UpdateListing(db, config.AppEnv.UploadDir))
		auth.DELETE("/listings/:id", handlers.DeleteListing(db, config.AppEnv.UploadDir))

		auth.POST("/listings/:id/reviews", handlers.CreateReview(db))
		auth.DELETE("/listings/:id/reviews/:reviewId", handlers.DeleteReview(db))
	}

	r.NoRoute(handlers.NotFound())

	addr := ":" + config.AppEnv.Port
	log.Println("listening on", addr)
	if err := http.ListenAndServe(addr, middleware.MethodOverride(r)); err != nil {
		log.Fatal(err)
	}
}
