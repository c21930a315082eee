package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergioCaMi/Gallery/models"
)

func init() {
	gin.SetMode(gin.TestMode)
	InitSessionStore([]byte("test-session-secret"))
}

func authenticate(t *testing.T, user models.SessionUser) []*http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, SaveUser(w, r, user))
	return w.Result().Cookies()
}

func TestSessionRoundTrip(t *testing.T) {
	user := models.SessionUser{Name: "Ada", Email: "ada@example.com", AvatarURL: "https://a/pic.png"}
	cookies := authenticate(t, user)
	require.NotEmpty(t, cookies)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}

	got := CurrentUser(r)
	require.NotNil(t, got)
	assert.Equal(t, user, *got)
}

func TestCurrentUserNilWithoutSession(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, CurrentUser(r))
}

func TestClearUserLogsOut(t *testing.T) {
	cookies := authenticate(t, DemoUser())

	r := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	require.NoError(t, ClearUser(w, r))

	// The response must expire the cookie.
	expired := w.Result().Cookies()
	require.NotEmpty(t, expired)
	assert.Negative(t, expired[0].MaxAge)
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	router := gin.New()
	router.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	router := gin.New()
	router.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range authenticate(t, DemoUser()) {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
