package models

import (
	"errors"
	"fmt"
	"strings"
)

// Role is an authorization role as reported by the backend.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

var (
	ErrMissingUserID = errors.New("user id is required")
	ErrMissingEmail  = errors.New("user email is required")
)

// User is the authenticated account. Only the first role drives routing.
type User struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// PrimaryRole returns the first role, or "" when the user has none.
func (u User) PrimaryRole() Role {
	if len(u.Roles) == 0 {
		return ""
	}
	return Role(strings.ToLower(strings.TrimSpace(u.Roles[0])))
}

// Validate reports whether u is usable as a session user.
func (u User) Validate() error {
	if u.ID <= 0 {
		return ErrMissingUserID
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrMissingEmail
	}
	return nil
}

func (u User) String() string {
	return fmt.Sprintf("%s <%s>", u.Name, u.Email)
}

// Session is a token paired with the user it was issued to.
type Session struct {
	Token string
	User  User
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
