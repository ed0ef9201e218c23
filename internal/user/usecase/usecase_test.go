package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/avadra/storefront-service/internal/apperr"
	"github.com/avadra/storefront-service/internal/auth"
	"github.com/avadra/storefront-service/internal/model"
	"github.com/avadra/storefront-service/internal/user/dto"
	"github.com/avadra/storefront-service/pkg/logger"
)

type fakeRepo struct {
	users map[string]*model.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*model.User{}}
}

func (f *fakeRepo) Create(ctx context.Context, u *model.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindByRole(ctx context.Context, role string) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, u *model.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) Count(ctx context.Context) (int, error) {
	return len(f.users), nil
}

func newTestUseCase() (*fakeRepo, *auth.TokenManager, *userUseCase) {
	repo := newFakeRepo()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	uc := NewUserUseCase(repo, tokens, logger.NewNop()).(*userUseCase)
	return repo, tokens, uc
}

func TestSignupFirstUserIsAdmin(t *testing.T) {
	_, tokens, uc := newTestUseCase()

	first, err := uc.Signup(context.Background(), &dto.SignupInput{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, first.User.Role)
	assert.Equal(t, "asha@example.com", first.User.Email)

	claims, err := tokens.Validate(first.Token)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)

	second, err := uc.Signup(context.Background(), &dto.SignupInput{
		Name:     "Ravi",
		Email:    "ravi@example.com",
		Password: "secret2",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, second.User.Role)
}

func TestSignupValidation(t *testing.T) {
	_, _, uc := newTestUseCase()

	_, err := uc.Signup(context.Background(), &dto.SignupInput{Email: "a@b.c", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = uc.Signup(context.Background(), &dto.SignupInput{Name: "A", Email: "a@b.c", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSignupDuplicateEmail(t *testing.T) {
	_, _, uc := newTestUseCase()

	_, err := uc.Signup(context.Background(), &dto.SignupInput{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = uc.Signup(context.Background(), &dto.SignupInput{Name: "Clone", Email: "ASHA@example.com", Password: "secret2"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "User already exists", apperr.MessageOf(err))
}

func TestLogin(t *testing.T) {
	repo, _, uc := newTestUseCase()

	_, err := uc.Signup(context.Background(), &dto.SignupInput{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	// Stored hash must never be the plain password.
	for _, u := range repo.users {
		assert.NotEqual(t, "secret1", u.PasswordHash)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
	}

	resp, err := uc.Login(context.Background(), &dto.LoginInput{Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = uc.Login(context.Background(), &dto.LoginInput{Email: "asha@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Invalid email or password", apperr.MessageOf(err))

	_, err = uc.Login(context.Background(), &dto.LoginInput{Email: "ghost@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", apperr.MessageOf(err))
}

func TestListCustomersExcludesAdmins(t *testing.T) {
	_, _, uc := newTestUseCase()

	// First signup is the admin, the rest are customers.
	_, err := uc.Signup(context.Background(), &dto.SignupInput{Name: "Root", Email: "root@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = uc.Signup(context.Background(), &dto.SignupInput{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = uc.Signup(context.Background(), &dto.SignupInput{Name: "Ravi", Email: "ravi@example.com", Password: "secret1"})
	require.NoError(t, err)

	customers, err := uc.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	for _, u := range customers {
		assert.Equal(t, model.RoleUser, u.Role)
	}
}

func TestUpdateProfile(t *testing.T) {
	_, _, uc := newTestUseCase()

	resp, err := uc.Signup(context.Background(), &dto.SignupInput{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	city := "Pune"
	phone := "9876543210"
	updated, err := uc.UpdateProfile(context.Background(), resp.User.ID, &dto.UpdateProfileInput{
		City:  &city,
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pune", updated.City)
	assert.Equal(t, "9876543210", updated.Phone)
	assert.Equal(t, "Asha", updated.Name, "omitted fields stay put")

	empty := " "
	_, err = uc.UpdateProfile(context.Background(), resp.User.ID, &dto.UpdateProfileInput{Name: &empty})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
