package user

import (
	"context"

	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/user/dto"
)

type UseCase interface {
	Signup(ctx context.Context, input *dto.SignupInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input *dto.LoginInput) (*dto.AuthResponse, error)
	Profile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, input *dto.UpdateProfileInput) (*model.User, error)

	// ListCustomers returns regular (non-admin) accounts, newest first.
	ListCustomers(ctx context.Context) ([]model.User, error)
}
