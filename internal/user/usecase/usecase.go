package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/auth"
	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/user"
	"github.com/avadra/storefront-service/internal/user/dto"
	"github.com/avadra/storefront-service/pkg/logger"
)

type userUseCase struct {
	repo   user.Repository
	tokens *auth.TokenManager
	logger logger.ZapLogger
}

func NewUserUseCase(repo user.Repository, tokens *auth.TokenManager, log logger.ZapLogger) user.UseCase {
	return &userUseCase{repo: repo, tokens: tokens, logger: log}
}

// Signup registers a new account. The very first account in the database
// becomes the admin; everyone after that is a regular user.
func (uc *userUseCase) Signup(ctx context.Context, input *dto.SignupInput) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, apperr.New(apperr.KindValidation, "Name, email and password are required")
	}
	if len(input.Password) < 6 {
		return nil, apperr.New(apperr.KindValidation, "Password must be at least 6 characters")
	}

	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check email", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindConflict, "User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	count, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to count users", err)
	}
	role := model.RoleUser
	if count == 0 {
		role = model.RoleAdmin
	}

	now := time.Now()
	u := &model.User{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Country:      "India",
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}

	token, err := uc.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	uc.logger.Info("user registered", zap.String("user_id", u.ID), zap.String("role", u.Role))
	return &dto.AuthResponse{User: u, Token: token}, nil
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, apperr.New(apperr.KindValidation, "Email and password are required")
	}

	u, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to look up user", err)
	}
	if u == nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid email or password")
	}

	token, err := uc.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}
	return &dto.AuthResponse{User: u, Token: token}, nil
}

func (uc *userUseCase) Profile(ctx context.Context, userID string) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}
	if u == nil {
		return nil, apperr.New(apperr.KindNotFound, "User not found")
	}
	return u, nil
}

func (uc *userUseCase) ListCustomers(ctx context.Context) ([]model.User, error) {
	users, err := uc.repo.FindByRole(ctx, model.RoleUser)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list customers", err)
	}
	return users, nil
}

func (uc *userUseCase) UpdateProfile(ctx context.Context, userID string, input *dto.UpdateProfileInput) (*model.User, error) {
	u, err := uc.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&u.Name, input.Name)
	apply(&u.Phone, input.Phone)
	apply(&u.Address, input.Address)
	apply(&u.City, input.City)
	apply(&u.State, input.State)
	apply(&u.Pincode, input.Pincode)
	apply(&u.Country, input.Country)
	apply(&u.ProfileImage, input.ProfileImage)

	if strings.TrimSpace(u.Name) == "" {
		return nil, apperr.New(apperr.KindValidation, "Name cannot be empty")
	}

	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update user", err)
	}
	return u, nil
}
