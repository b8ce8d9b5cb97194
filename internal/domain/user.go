package domain

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants full administrative access.
	RoleAdmin Role = "admin"
	// RoleUser grants standard member access.
	RoleUser Role = "user"
)

// User represents an authenticated user account in the system.
type User struct {
	Record
	Name         string `json:"name"`
	Age          int    `json:"age,omitempty"`
	Gender       string `json:"gender,omitempty"`
	DOB          string `json:"dob,omitempty"`
	Contact      string `json:"contact"`
	Photo        string `json:"photo,omitempty"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Role         Role   `json:"role"`                    // user or admin
}

// IsAdmin returns true if the user has administrative privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
