package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tradeboard/backend/internal/domain/identity"
	"github.com/tradeboard/backend/internal/domain/shared"
	"github.com/tradeboard/backend/internal/infrastructure/auth"
	"github.com/tradeboard/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newAuthService(repo *mockUserRepo) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-with-enough-length",
		TokenExpiration: time.Hour,
		Issuer:          "tradeboard-test",
	})
	return NewAuthService(repo, jwtService, zap.NewNop())
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers new user and returns token", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByEmail", ctx, "anna@example.com").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		svc := newAuthService(repo)
		resp, err := svc.Register(ctx, RegisterRequest{
			FirstName: "Anna",
			LastName:  "Ivanova",
			Email:     "anna@example.com",
			Password:  "secret-password",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "anna@example.com", resp.User.Email)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		existing, err := identity.NewUser("Anna", "Ivanova", "anna@example.com", "secret-password")
		require.NoError(t, err)

		repo := new(mockUserRepo)
		repo.On("FindByEmail", ctx, "anna@example.com").Return(existing, nil)

		svc := newAuthService(repo)
		_, err = svc.Register(ctx, RegisterRequest{
			FirstName: "Anna",
			LastName:  "Ivanova",
			Email:     "anna@example.com",
			Password:  "secret-password",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "USER_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects weak password", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByEmail", ctx, "anna@example.com").Return(nil, shared.ErrNotFound)

		svc := newAuthService(repo)
		_, err := svc.Register(ctx, RegisterRequest{
			FirstName: "Anna",
			LastName:  "Ivanova",
			Email:     "anna@example.com",
			Password:  "short",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "WEAK_PASSWORD", domainErr.Code)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	user, err := identity.NewUser("Anna", "Ivanova", "anna@example.com", "secret-password")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByEmail", ctx, "anna@example.com").Return(user, nil)

		svc := newAuthService(repo)
		resp, err := svc.Login(ctx, LoginRequest{Email: "anna@example.com", Password: "secret-password"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, user.ID.String(), resp.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByEmail", ctx, "anna@example.com").Return(user, nil)

		svc := newAuthService(repo)
		_, err := svc.Login(ctx, LoginRequest{Email: "anna@example.com", Password: "wrong-password"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

		svc := newAuthService(repo)
		_, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret-password"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}
