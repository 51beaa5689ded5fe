package models

// Response is the common envelope for every API reply.
// Success is always present; Message carries the human-readable outcome.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UserResponse wraps a single sanitized user record.
type UserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
}

// UsersResponse wraps the full user listing returned to admins.
type UsersResponse struct {
	Success bool   `json:"success"`
	Users   []User `json:"users"`
}

// LoginResponse is returned by a successful login. The token is delivered
// both here and in the session cookie so non-cookie clients can use it.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}
