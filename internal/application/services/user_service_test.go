package services_test

import (
	"context"
	"testing"

	"github.com/slotbook/backend/internal/application/services"
	"github.com/slotbook/backend/internal/domain/entities"
	apperrors "github.com/slotbook/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Register(t *testing.T) {
	t.Run("creates a user with a hashed password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewUserService(repo)

		repo.On("GetByEmail", mock.Anything, "john@example.com").
			Return(nil, apperrors.NewNotFoundError("user not found"))
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Name == "John Doe" &&
				u.Email == "john@example.com" &&
				u.PasswordHash != "secret123" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
		})).Return(nil)

		user, err := service.Register(context.Background(), services.RegisterInput{
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.False(t, user.IsProvider)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewUserService(repo)

		repo.On("GetByEmail", mock.Anything, "john@example.com").
			Return(&entities.User{ID: "existing"}, nil)

		_, err := service.Register(context.Background(), services.RegisterInput{
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "secret123",
		})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewUserService(repo)

		cases := []struct {
			name  string
			input services.RegisterInput
		}{
			{"missing name", services.RegisterInput{Email: "john@example.com", Password: "secret123"}},
			{"invalid email", services.RegisterInput{Name: "John", Email: "not-an-email", Password: "secret123"}},
			{"short password", services.RegisterInput{Name: "John", Email: "john@example.com", Password: "short"}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := service.Register(context.Background(), tc.input)
				assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
			})
		}
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	hash := func(t *testing.T, password string) string {
		t.Helper()
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		return string(h)
	}

	t.Run("updates the name without touching the password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewUserService(repo)

		stored := &entities.User{ID: "user-1", Name: "John", Email: "john@example.com", PasswordHash: hash(t, "secret123")}
		repo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Name == "Johnny"
		})).Return(nil)

		user, err := service.UpdateProfile(context.Background(), "user-1", services.UpdateProfileInput{Name: "Johnny"})

		require.NoError(t, err)
		assert.Equal(t, "Johnny", user.Name)
		assert.Equal(t, "john@example.com", user.Email)
	})

	t.Run("changes the password when the old one matches", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewUserService(repo)

		stored := &entities.User{ID: "user-1", Name: "John", Email: "john@example.com", PasswordHash: hash(t, "secret123")}
		repo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		user, err := service.UpdateProfile(context.Background(), "user-1", services.UpdateProfileInput{
			OldPassword: "secret123",
			Password:    "newsecret",
		})

		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newsecret")))
	})

	t.Run("rejects a wrong old password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewUserService(repo)

		stored := &entities.User{ID: "user-1", Name: "John", Email: "john@example.com", PasswordHash: hash(t, "secret123")}
		repo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)

		_, err := service.UpdateProfile(context.Background(), "user-1", services.UpdateProfileInput{
			OldPassword: "wrong",
			Password:    "newsecret",
		})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("requires the old password to set a new one", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewUserService(repo)

		stored := &entities.User{ID: "user-1", Name: "John", Email: "john@example.com", PasswordHash: hash(t, "secret123")}
		repo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)

		_, err := service.UpdateProfile(context.Background(), "user-1", services.UpdateProfileInput{Password: "newsecret"})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects an email already taken by another user", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := services.NewUserService(repo)

		stored := &entities.User{ID: "user-1", Name: "John", Email: "john@example.com", PasswordHash: hash(t, "secret123")}
		repo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)
		repo.On("GetByEmail", mock.Anything, "jane@example.com").
			Return(&entities.User{ID: "user-2"}, nil)

		_, err := service.UpdateProfile(context.Background(), "user-1", services.UpdateProfileInput{Email: "jane@example.com"})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
