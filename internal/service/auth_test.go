package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"servigo-backend/internal/domain"
	"servigo-backend/internal/repository"
	"servigo-backend/internal/security"
	"servigo-backend/internal/service"
)

func newTestTokenManager() security.TokenManager {
	return security.NewTokenManager("test-secret-key-for-tests-only", 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(users, newTestTokenManager())

		users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.User).ID = 1
			}).
			Return(nil)

		user, err := svc.Register(context.Background(), "New@Test.com", "New User", "123456", domain.UserTypeProvider, "password123")
		assert.NoError(t, err)
		assert.Equal(t, int32(1), user.ID)
		assert.Equal(t, "new@test.com", user.Email)
		assert.Equal(t, domain.UserStatusPending, user.Status)
		assert.Equal(t, domain.VerificationPending, user.VerificationStatus)
		assert.False(t, user.IsActive)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepository), newTestTokenManager())
		_, err := svc.Register(context.Background(), "not-an-email", "User", "1", domain.UserTypeClient, "password123")
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepository), newTestTokenManager())
		_, err := svc.Register(context.Background(), "a@b.com", "User", "1", domain.UserTypeClient, "short")
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("InvalidUserType", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepository), newTestTokenManager())
		_, err := svc.Register(context.Background(), "a@b.com", "User", "1", domain.UserType("admin"), "password123")
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(users, newTestTokenManager())

		users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(repository.ErrDuplicate)

		_, err := svc.Register(context.Background(), "taken@test.com", "User", "1", domain.UserTypeClient, "password123")
		assert.ErrorIs(t, err, service.ErrDuplicateEmail)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	stored := &domain.User{
		ID:           1,
		Email:        "pro@test.com",
		FullName:     "Pro",
		UserType:     domain.UserTypeProvider,
		Status:       domain.UserStatusApproved,
		IsActive:     true,
		PasswordHash: string(hash),
	}

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := newTestTokenManager()
		svc := service.NewAuthService(users, tokens)

		users.On("GetByEmail", mock.Anything, "pro@test.com").Return(stored, nil)

		user, access, refresh, err := svc.Login(context.Background(), "pro@test.com", "password123")
		assert.NoError(t, err)
		assert.Equal(t, int32(1), user.ID)

		claims, err := tokens.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), claims.UserID)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
		assert.Contains(t, claims.Roles, "provider")

		refreshClaims, err := tokens.ValidateToken(refresh)
		assert.NoError(t, err)
		assert.Equal(t, security.TokenTypeRefresh, refreshClaims.Type)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(users, newTestTokenManager())

		users.On("GetByEmail", mock.Anything, "pro@test.com").Return(stored, nil)

		_, _, _, err := svc.Login(context.Background(), "pro@test.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmailLooksTheSame", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(users, newTestTokenManager())

		users.On("GetByEmail", mock.Anything, "ghost@test.com").Return(nil, repository.ErrNotFound)

		_, _, _, err := svc.Login(context.Background(), "ghost@test.com", "password123")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("AdminRoleOnAdminAccount", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := newTestTokenManager()
		svc := service.NewAuthService(users, tokens)

		admin := *stored
		admin.IsAdmin = true
		users.On("GetByEmail", mock.Anything, "pro@test.com").Return(&admin, nil)

		_, access, _, err := svc.Login(context.Background(), "pro@test.com", "password123")
		assert.NoError(t, err)

		claims, err := tokens.ValidateToken(access)
		assert.NoError(t, err)
		assert.True(t, claims.IsAdmin())
	})
}

func TestAuthService_Refresh(t *testing.T) {
	tokens := newTestTokenManager()

	stored := &domain.User{ID: 1, Email: "pro@test.com", UserType: domain.UserTypeProvider}

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(users, tokens)

		refresh, err := tokens.GenerateRefreshToken(1, "pro@test.com")
		assert.NoError(t, err)

		users.On("GetByID", mock.Anything, int32(1)).Return(stored, nil)

		access, newRefresh, err := svc.Refresh(context.Background(), refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)

		claims, err := tokens.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := service.NewAuthService(users, tokens)

		access, err := tokens.GenerateAccessToken(1, "pro@test.com", []string{"provider"})
		assert.NoError(t, err)

		_, _, err = svc.Refresh(context.Background(), access)
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepository), tokens)

		_, _, err := svc.Refresh(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
