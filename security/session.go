// Package security wires the OAuth providers and the cookie-backed
// session that carries the authenticated identity.
package security

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth/gothic"

	"github.com/SergioCaMi/Gallery/models"
)

const (
	sessionName = "gallery_session"
	sessionAge  = 24 * 60 * 60 // 24 hours, matching the cookie lifetime the gallery has always used
)

var store sessions.Store

// InitSessionStore installs the cookie store used for both gothic's
// OAuth handshake state and the application session.
func InitSessionStore(secret []byte) {
	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionAge,
		HttpOnly: true,
	}
	store = cs
	gothic.Store = cs
}

// SaveUser stores the authenticated identity in the session.
func SaveUser(w http.ResponseWriter, r *http.Request, user models.SessionUser) error {
	sess, _ := store.Get(r, sessionName)
	sess.Values["name"] = user.Name
	sess.Values["email"] = user.Email
	sess.Values["avatar_url"] = user.AvatarURL
	return sess.Save(r, w)
}

// ClearUser drops the session, logging the user out.
func ClearUser(w http.ResponseWriter, r *http.Request) error {
	sess, _ := store.Get(r, sessionName)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// CurrentUser returns the identity carried by the request's session, or
// nil when the request is unauthenticated.
func CurrentUser(r *http.Request) *models.SessionUser {
	sess, err := store.Get(r, sessionName)
	if err != nil {
		return nil
	}

	email, _ := sess.Values["email"].(string)
	if email == "" {
		return nil
	}
	name, _ := sess.Values["name"].(string)
	avatar, _ := sess.Values["avatar_url"].(string)
	return &models.SessionUser{Name: name, Email: email, AvatarURL: avatar}
}

// RequireAuth redirects unauthenticated requests to the gallery home,
// mirroring the behavior of every protected route.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c.Request) == nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
