package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/poofware/buyer-leads-service/internal/models"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

func TestLogin_ReturnsExistingUser(t *testing.T) {
	users := &mockUserRepo{}
	existing := &models.User{ID: uuid.New(), Name: "Meera", CreatedAt: time.Now()}
	users.On("GetByName", mock.Anything, "Meera").Return(existing, nil)

	got, err := NewUserService(users).Login(context.Background(), "  Meera ")
	require.NoError(t, err)
	assert.Equal(t, existing, got)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_CreatesOnFirstSight(t *testing.T) {
	users := &mockUserRepo{}
	users.On("GetByName", mock.Anything, "Meera").Return(nil, nil).Once()

	var created *models.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*models.User) }).
		Return(nil)
	users.On("GetByName", mock.Anything, "Meera").
		Return(func(context.Context, string) *models.User { return created }, nil).Once()

	got, err := NewUserService(users).Login(context.Background(), "Meera")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Meera", got.Name)
}

func TestLogin_RejectsShortNames(t *testing.T) {
	users := &mockUserRepo{}
	for _, name := range []string{"", " ", "M", "  M  "} {
		_, err := NewUserService(users).Login(context.Background(), name)
		appErr := requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
		assert.Equal(t, "Name must be at least 2 characters long", appErr.Message)
	}
	users.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
}
