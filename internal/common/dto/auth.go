package dto

import (
	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/common/cnst"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response body
type LoginResponse struct {
	Token string         `json:"token"`
	User  *database.User `json:"user"`
}

// InviteUserRequest is the body of POST /api/users. ClientIDs are linked to the new user.
type InviteUserRequest struct {
	Username  string         `json:"username" binding:"required"`
	Password  string         `json:"password" binding:"required,min=8"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Role      cnst.Role      `json:"role"` // user or client, defaults to client
	UserType  *cnst.UserType `json:"userType,omitempty"`
	ClientIDs []uint         `json:"clientIds"`
}
