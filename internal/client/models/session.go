// Package models holds the client-side data types exchanged with the backend.
package models

// Tokens is the persisted access/refresh pair. Zero value means "no session".
type Tokens struct {
	Access  string
	Refresh string
}

func (t Tokens) Empty() bool {
	return t.Access == "" && t.Refresh == ""
}

// Session is the login response: tokens plus identity fields when the
// backend embeds them.
type Session struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	UserID   int64  `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

func (s Session) Tokens() Tokens {
	return Tokens{Access: s.Access, Refresh: s.Refresh}
}
