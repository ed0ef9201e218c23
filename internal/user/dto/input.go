package dto

import "github.com/avadra/storefront-service/internal/model"

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput carries only the fields a user may change; nil means
// leave the current value alone.
type UpdateProfileInput struct {
	Name         *string
	Phone        *string
	Address      *string
	City         *string
	State        *string
	Pincode      *string
	Country      *string
	ProfileImage *string
}

// AuthResponse is returned by both signup and login.
type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}
