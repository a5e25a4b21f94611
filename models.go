package session

import (
	"encoding/json"

	"github.com/google/uuid"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is a regular storefront account
	RoleUser UserRole = "user"
	// RoleModerator can manage catalog content
	RoleModerator UserRole = "moderator"
	// RoleAdmin has full access to the admin dashboard
	RoleAdmin UserRole = "admin"
)

// User is the profile snapshot the Auth API returns for an authenticated
// identity. It is held in memory while authenticated and mirrored to the
// Store so the next run can restore it without a network call.
type User struct {
	ID           string   `json:"_id,omitempty"`
	FirstName    string   `json:"first_name,omitempty"`
	LastName     string   `json:"last_name,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Role         UserRole `json:"role,omitempty"`
	IsActive     bool     `json:"is_active,omitempty"`
	ProfileImage string   `json:"profile_image,omitempty"`
}

// UUID parses the user ID when the backend issues UUID identifiers.
func (u *User) UUID() (uuid.UUID, error) {
	return uuid.Parse(u.ID)
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Envelope is the response wrapper every Auth API endpoint uses:
// {success, message, data}.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// AuthPayload is the data section of a successful login or registration.
type AuthPayload struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
