package auth

import (
	"github.com/macroplate/macroplate-backend/internal/users"
)

// LoginRequest is the credential payload for both user and admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minted token and the authenticated user.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}

// RegisterResponse mirrors LoginResponse so clients land signed in.
type RegisterResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
