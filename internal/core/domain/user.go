package domain

import "time"

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleModerator || role == RoleUser
}

// User models an account in the system. Credentials are stored separately and
// never leave the auth layer.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Username  string    `json:"username" bson:"username"`
	Email     string    `json:"email" bson:"email"`
	Role      string    `json:"role" bson:"role"`
	Active    bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool { return u.Role == RoleModerator }

// Credentials holds the sensitive half of a user account, one-to-one with User.
// A user without credentials cannot authenticate.
type Credentials struct {
	ID           string    `json:"-" bson:"_id,omitempty"`
	UserID       string    `json:"-" bson:"user_id"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	LastLogin    time.Time `json:"-" bson:"last_login,omitempty"`
	CreatedAt    time.Time `json:"-" bson:"created_at"`
	UpdatedAt    time.Time `json:"-" bson:"updated_at"`
}
