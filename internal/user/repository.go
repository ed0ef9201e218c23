package user

import (
	"context"

	"github.com/avadra/storefront-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByRole(ctx context.Context, role string) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Count(ctx context.Context) (int, error)
}
