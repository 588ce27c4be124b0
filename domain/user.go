package domain

import "time"

// Role classifies an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an authenticated identity in the platform.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the actor behind an operation. Every operation that needs
// one takes it as an explicit parameter; there is no ambient current user.
type Identity struct {
	ID    string
	Email string
	Admin bool
}

// IdentityOf derives an Identity from a stored user. adminEmail marks one
// configured account as administrator regardless of its stored role.
func IdentityOf(u *User, adminEmail string) Identity {
	if u == nil {
		return Identity{}
	}
	return Identity{
		ID:    u.ID,
		Email: u.Email,
		Admin: u.Role == RoleAdmin || (adminEmail != "" && u.Email == adminEmail),
	}
}
