package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/poofware/buyer-leads-service/internal/config"
	"github.com/poofware/buyer-leads-service/internal/models"
)

type mockBuyerRepo struct{ mock.Mock }

func (m *mockBuyerRepo) Create(ctx context.Context, b *models.Buyer) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBuyerRepo) CreateMany(ctx context.Context, buyers []*models.Buyer) error {
	return m.Called(ctx, buyers).Error(0)
}

func (m *mockBuyerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Buyer, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Buyer)
	return b, args.Error(1)
}

func (m *mockBuyerRepo) Search(ctx context.Context, f models.BuyerFilter, limit, offset int) ([]*models.Buyer, int, error) {
	args := m.Called(ctx, f, limit, offset)
	out, _ := args.Get(0).([]*models.Buyer)
	return out, args.Int(1), args.Error(2)
}

func (m *mockBuyerRepo) ListAll(ctx context.Context, f models.BuyerFilter) ([]*models.Buyer, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]*models.Buyer)
	return out, args.Error(1)
}

func (m *mockBuyerRepo) UpdateIfUnmodified(ctx context.Context, b *models.Buyer, expected time.Time) (pgconn.CommandTag, error) {
	args := m.Called(ctx, b, expected)
	tag, _ := args.Get(0).(pgconn.CommandTag)
	return tag, args.Error(1)
}

func (m *mockBuyerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	args := m.Called(ctx, name)
	if fn, ok := args.Get(0).(func(context.Context, string) *models.User); ok {
		return fn(ctx, name), args.Error(1)
	}
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockHistoryRepo struct{ mock.Mock }

func (m *mockHistoryRepo) Create(ctx context.Context, h *models.BuyerHistory) error {
	return m.Called(ctx, h).Error(0)
}

func (m *mockHistoryRepo) ListByBuyerID(ctx context.Context, buyerID uuid.UUID, limit int) ([]*models.BuyerHistory, error) {
	args := m.Called(ctx, buyerID, limit)
	out, _ := args.Get(0).([]*models.BuyerHistory)
	return out, args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		AppName:              config.DefaultAppName,
		RateLimitWindow:      60 * time.Second,
		RateLimitMaxRequests: 10,
		ImportMaxRows:        200,
	}
}
