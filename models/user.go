package models

// SessionUser is the authenticated identity carried in the session. No
// user entity is persisted; this is everything the application knows
// about who is logged in.
type SessionUser struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}
