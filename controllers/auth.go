package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"

	"github.com/SergioCaMi/Gallery/security"
)

// AuthController serves login, the OAuth callback and logout. In demo
// mode the Google round-trip is replaced with a fixed demo identity so
// the gallery works without provider credentials.
type AuthController struct {
	DemoMode bool
}

func NewAuthController(demoMode bool) *AuthController {
	return &AuthController{DemoMode: demoMode}
}

// Login starts the Google OAuth flow, or signs in the demo user.
func (ac *AuthController) Login(c *gin.Context) {
	if ac.DemoMode {
		if err := security.SaveUser(c.Writer, c.Request, security.DemoUser()); err != nil {
			slog.Error("Failed to save demo session", "error", err)
			renderError(c, http.StatusInternalServerError, "Could not sign you in.")
			return
		}
		c.Redirect(http.StatusFound, "/google/callback")
		return
	}

	// gothic resolves the provider from the request query.
	q := c.Request.URL.Query()
	q.Set("provider", security.GoogleProviderName)
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// Callback completes the OAuth flow and stores the identity in the
// session.
func (ac *AuthController) Callback(c *gin.Context) {
	if ac.DemoMode {
		user := security.CurrentUser(c.Request)
		if user == nil {
			c.Redirect(http.StatusFound, "/auth/google")
			return
		}
		c.HTML(http.StatusOK, "welcome.html", gin.H{"User": user})
		return
	}

	q := c.Request.URL.Query()
	q.Set("provider", security.GoogleProviderName)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		slog.Error("OAuth callback failed", "error", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	user := security.UserFromGoth(gothUser)
	if err := security.SaveUser(c.Writer, c.Request, user); err != nil {
		slog.Error("Failed to save session", "error", err)
		renderError(c, http.StatusInternalServerError, "Could not sign you in.")
		return
	}

	c.HTML(http.StatusOK, "welcome.html", gin.H{"User": &user})
}

// Logout clears the session and returns to the gallery.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := security.ClearUser(c.Writer, c.Request); err != nil {
		slog.Error("Failed to clear session", "error", err)
		renderError(c, http.StatusInternalServerError, "Could not sign you out.")
		return
	}
	c.Redirect(http.StatusFound, "/")
}
