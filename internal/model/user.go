package model

// Username identifies a user across the system. Usernames are unique and
// compared case-sensitively everywhere, including room membership checks.
type Username string

// Role controls what a user is allowed to do
type Role string

const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
)

// User is an account created at seed time. Accounts are immutable after
// creation; there is no registration or profile editing.
type User struct {
	Username     Username
	PasswordHash string // bcrypt hash
	Role         Role
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
