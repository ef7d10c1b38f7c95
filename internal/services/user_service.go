package services

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/poofware/buyer-leads-service/internal/models"
	"github.com/poofware/buyer-leads-service/internal/repositories"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

const minNameLength = 2

type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// Login returns the user with the given (trimmed) name, creating it on first
// sight. No credentials are involved.
func (s *UserService) Login(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Name must be at least 2 characters long",
		}
	}

	existing, err := s.users.GetByName(ctx, name)
	if err != nil {
		return nil, internalError("Failed to look up user", err)
	}
	if existing != nil {
		return existing, nil
	}

	if err := s.users.Create(ctx, &models.User{ID: uuid.New(), Name: name}); err != nil {
		return nil, internalError("Failed to create user", err)
	}

	// Re-read so a concurrent login with the same name resolves to one row.
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		return nil, internalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, internalError("Failed to create user", nil)
	}
	utils.Logger.WithField("user_id", user.ID).Info("User logged in for the first time")
	return user, nil
}
