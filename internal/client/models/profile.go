package models

// Profile is the authenticated user as returned by /profiles/me/.
type Profile struct {
	ID             int64  `json:"id,omitempty"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// Registration is the body of /profiles/register/.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
