package model

// User represents the account behind a session
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// AuthResponse is returned by login, signup and refresh-token
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user"`
}

// Valid returns true if the response carries both a token and a user
func (r *AuthResponse) Valid() bool {
	return r != nil && r.AccessToken != "" && r.User != nil && r.User.Email != ""
}

// SessionState is a snapshot of what the client believes about the login.
// Authenticated implies a non-nil User.
type SessionState struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user"`
}

// Email returns the user's email or an empty string
func (s SessionState) Email() string {
	if s.User == nil {
		return ""
	}
	return s.User.Email
}
