package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slotbook/backend/internal/domain/entities"
	"github.com/slotbook/backend/internal/domain/repositories"
	apperrors "github.com/slotbook/backend/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// UserService handles registration and profile updates.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	IsProvider bool
}

// Register creates a new user with a bcrypt password hash. Email
// addresses are unique.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil && !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("a user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	user := &entities.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: string(hash),
		IsProvider:   input.IsProvider,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput carries a profile update request. Zero-value
// fields are left unchanged; changing the password requires the old one.
type UpdateProfileInput struct {
	Name        string
	Email       string
	OldPassword string
	Password    string
}

// UpdateProfile applies a partial profile update.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entities.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			return nil, apperrors.NewValidationError("invalid email address")
		}
		existing, err := s.repo.GetByEmail(ctx, input.Email)
		if err != nil && !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.NewConflictError("a user with this email already exists")
		}
		user.Email = input.Email
	}

	if input.Name != "" {
		user.Name = strings.TrimSpace(input.Name)
	}

	if input.Password != "" {
		if len(input.Password) < minPasswordLength {
			return nil, apperrors.NewValidationError("password must be at least 6 characters")
		}
		if input.OldPassword == "" {
			return nil, apperrors.NewValidationError("old password is required to set a new one")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
			return nil, apperrors.NewUnauthorizedError("old password is incorrect")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func validateRegistration(input RegisterInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("name is required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return apperrors.NewValidationError("invalid email address")
	}
	if len(input.Password) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 6 characters")
	}
	return nil
}
