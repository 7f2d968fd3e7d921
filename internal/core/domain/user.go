package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID           ID
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

func NewUser(username, passwordHash string, role Role) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID   ID
	Username string
	Role     Role
}

type Session struct {
	AccessToken string
	TokenType   string
	User        *User
}
