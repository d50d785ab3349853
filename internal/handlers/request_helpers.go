package handlers

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/Surajrawat7017/wanderlustt/internal/middleware"
)

// render merges the current user and any pending flash notices into the
// template data. Flashes are consumed here, so a notice set during the
// previous request shows up exactly once.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["currentUser"] = middleware.CurrentUser(c)

	session := sessions.Default(c)
	success := session.Flashes("success")
	failure := session.Flashes("error")
	if len(success) > 0 || len(failure) > 0 {
		_ = session.Save()
	}
	data["success"] = success
	data["error"] = failure

	c.HTML(status, name, data)
}

// setFlash queues a one-shot notice for the next rendered page.
func setFlash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	if err := session.Save(); err != nil {
		log.Println("[FLASH] [ERROR] session save failed:", err)
	}
}

// renderError is the terminal error handler: anything a route cannot
// recover from ends up on the generic error page.
func renderError(c *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = "Something went wrong!"
	}
	c.Abort()
	render(c, status, "error.html", gin.H{
		"status":  status,
		"message": message,
	})
}

// NotFound handles every unmatched route with a real 404 body.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		renderError(c, http.StatusNotFound, "Page Not Found")
	}
}

// Recover renders the error page for panicking handlers.
func Recover() gin.RecoveryFunc {
	return func(c *gin.Context, err any) {
		log.Printf("[%s %s] panic recovered: %v", c.Request.Method, c.Request.URL.Path, err)
		renderError(c, http.StatusInternalServerError, "")
	}
}

// Home sends the bare root to the listings index.
func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/listings")
	}
}
