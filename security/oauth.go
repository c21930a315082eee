package security

import (
	"github.com/markbates/goth"
	gothGoogle "github.com/markbates/goth/providers/google"

	"github.com/SergioCaMi/Gallery/models"
)

// GoogleProviderName is the goth provider key the auth routes use.
const GoogleProviderName = "google"

// RegisterGoogleProvider configures the Google OAuth provider. Demo
// mode skips this entirely; in durable mode missing credentials are a
// configuration error surfaced at startup.
func RegisterGoogleProvider(clientID, clientSecret, callbackURL string) {
	goth.UseProviders(gothGoogle.New(clientID, clientSecret, callbackURL, "email", "profile"))
}

// UserFromGoth converts a completed goth authentication into the
// session identity, preferring the display name and falling back to
// the given/family names as the providers populate them unevenly.
func UserFromGoth(gu goth.User) models.SessionUser {
	name := gu.Name
	if name == "" {
		name = gu.FirstName
		if gu.LastName != "" {
			name += " " + gu.LastName
		}
	}
	return models.SessionUser{
		Name:      name,
		Email:     gu.Email,
		AvatarURL: gu.AvatarURL,
	}
}

// DemoUser is the fixed identity used when demo auth is enabled.
func DemoUser() models.SessionUser {
	return models.SessionUser{
		Name:      "Demo User",
		Email:     "demo@test.com",
		AvatarURL: "https://via.placeholder.com/50x50/4285f4/fff?text=Demo",
	}
}
