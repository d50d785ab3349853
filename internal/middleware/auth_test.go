package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Surajrawat7017/wanderlustt/internal/models"
)

func newAuthTestRouter(loggedIn bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("session", cookie.NewStore([]byte("test-secret"))))
	if loggedIn {
		r.Use(func(c *gin.Context) {
			c.Set(ContextUserKey, &models.User{Username: "alice"})
		})
	}
	r.GET("/protected", RequireLogin(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestRequireLogin_RedirectsAnonymousToLogin(t *testing.T) {
	r := newAuthTestRouter(false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
	require.NotEqual(t, "ok", w.Body.String())
}

func TestRequireLogin_PassesAuthenticatedUser(t *testing.T) {
	r := newAuthTestRouter(true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}

func TestCurrentUser_NilWithoutUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	require.Nil(t, CurrentUser(c))
}

func TestCurrentUser_ReturnsAttachedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ContextUserKey, &models.User{Username: "alice"})

	user := CurrentUser(c)
	require.NotNil(t, user)
	require.Equal(t, "alice", user.Username)
}
