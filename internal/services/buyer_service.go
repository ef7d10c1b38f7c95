package services

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/buyer-leads-service/internal/dtos"
	"github.com/poofware/buyer-leads-service/internal/models"
	"github.com/poofware/buyer-leads-service/internal/repositories"
	"github.com/poofware/buyer-leads-service/internal/utils"
	"github.com/poofware/buyer-leads-service/internal/validation"
)

const (
	BuyerPageSize = 10
	// MaxBuyerPage keeps the list OFFSET within a Postgres int4.
	MaxBuyerPage = math.MaxInt32/BuyerPageSize + 1

	DetailHistoryLimit  = 5
	anonymousActorLabel = "anonymous"
)

type BuyerService struct {
	buyers  repositories.BuyerRepository
	users   repositories.UserRepository
	history *HistoryService
	schema  *validation.BuyerSchema
}

func NewBuyerService(
	buyers repositories.BuyerRepository,
	users repositories.UserRepository,
	history *HistoryService,
	schema *validation.BuyerSchema,
) *BuyerService {
	return &BuyerService{
		buyers:  buyers,
		users:   users,
		history: history,
		schema:  schema,
	}
}

// CreateBuyer validates and stores a new lead, then records a "created"
// history entry. The actor label falls back to the lead's own name.
func (s *BuyerService) CreateBuyer(ctx context.Context, req dtos.CreateBuyerRequest) (*models.Buyer, error) {
	owner, err := resolveOwner(ctx, s.users, req.OwnerID)
	if err != nil {
		return nil, err
	}

	payload, details := s.schema.Validate(req.BuyerPayload)
	if len(details) > 0 {
		return nil, validationError(details)
	}

	buyer := newBuyerFromPayload(owner.ID, payload)
	if err := s.buyers.Create(ctx, buyer); err != nil {
		return nil, internalError("Failed to create buyer", err)
	}

	changedBy := strings.TrimSpace(req.ChangedBy)
	if changedBy == "" {
		changedBy = buyer.FullName
	}
	s.history.RecordCreated(ctx, changedBy, buyer.Clone())

	return buyer, nil
}

// GetBuyer returns the lead with its most recent history entries.
func (s *BuyerService) GetBuyer(ctx context.Context, id uuid.UUID) (*dtos.BuyerDetailResponse, error) {
	buyer, err := s.buyers.GetByID(ctx, id)
	if err != nil {
		return nil, internalError("Failed to load buyer", err)
	}
	if buyer == nil {
		return nil, notFoundError("Buyer not found")
	}

	history, err := s.history.ListForBuyer(ctx, id, DetailHistoryLimit)
	if err != nil {
		return nil, internalError("Failed to load buyer history", err)
	}

	return &dtos.BuyerDetailResponse{Buyer: buyer, History: history}, nil
}

// ListBuyers returns one page (1-based) of leads, most recently modified first.
func (s *BuyerService) ListBuyers(ctx context.Context, filter models.BuyerFilter, page int) (*dtos.BuyerListResponse, error) {
	if page < 1 {
		page = 1
	}
	if page > MaxBuyerPage {
		page = MaxBuyerPage
	}

	buyers, total, err := s.buyers.Search(ctx, filter, BuyerPageSize, (page-1)*BuyerPageSize)
	if err != nil {
		return nil, internalError("Failed to list buyers", err)
	}

	return &dtos.BuyerListResponse{
		Data:       buyers,
		Total:      total,
		Page:       page,
		PageSize:   BuyerPageSize,
		TotalPages: (total + BuyerPageSize - 1) / BuyerPageSize,
	}, nil
}

// UpdateBuyer applies a full replacement of the editable fields when the
// caller's updatedAt still matches the stored one.
func (s *BuyerService) UpdateBuyer(ctx context.Context, id uuid.UUID, req dtos.UpdateBuyerRequest) (*models.Buyer, error) {
	if req.UpdatedAt == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Missing updatedAt",
		}
	}

	payload, details := s.schema.Validate(req.BuyerPayload)
	if len(details) > 0 {
		return nil, validationError(details)
	}

	current, err := s.buyers.GetByID(ctx, id)
	if err != nil {
		return nil, internalError("Failed to load buyer", err)
	}
	if current == nil {
		return nil, notFoundError("Buyer not found")
	}

	if !sameInstant(*req.UpdatedAt, current.UpdatedAt) {
		return nil, conflictError(current)
	}

	old := current.Clone()
	next := current.Clone()
	applyPayload(next, payload)

	tag, err := s.buyers.UpdateIfUnmodified(ctx, next, current.UpdatedAt)
	if err != nil {
		return nil, internalError("Failed to update buyer", err)
	}
	if tag.RowsAffected() == 0 {
		latest, err := s.buyers.GetByID(ctx, id)
		if err != nil {
			return nil, internalError("Failed to load buyer", err)
		}
		if latest == nil {
			return nil, notFoundError("Buyer not found")
		}
		return nil, conflictError(latest)
	}

	updated, err := s.buyers.GetByID(ctx, id)
	if err != nil {
		return nil, internalError("Failed to load updated buyer", err)
	}
	if updated == nil {
		return nil, notFoundError("Buyer not found")
	}

	changedBy := strings.TrimSpace(req.ChangedBy)
	if changedBy == "" {
		changedBy = anonymousActorLabel
	}
	s.history.RecordUpdated(ctx, changedBy, old, updated.Clone())

	return updated, nil
}

// DeleteBuyer removes the lead and its history.
func (s *BuyerService) DeleteBuyer(ctx context.Context, id uuid.UUID) error {
	if err := s.buyers.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFoundError("Buyer not found")
		}
		return internalError("Failed to delete buyer", err)
	}
	return nil
}

// ListHistory returns every history entry for a buyer, newest first. An
// unknown or deleted buyer yields an empty list.
func (s *BuyerService) ListHistory(ctx context.Context, id uuid.UUID) ([]*models.BuyerHistory, error) {
	entries, err := s.history.ListForBuyer(ctx, id, 0)
	if err != nil {
		return nil, internalError("Failed to load buyer history", err)
	}
	return entries, nil
}

// sameInstant compares at the resolution Postgres stores (microseconds).
func sameInstant(a, b time.Time) bool {
	return a.Truncate(time.Microsecond).Equal(b.Truncate(time.Microsecond))
}

func conflictError(current *models.Buyer) error {
	return &utils.AppError{
		StatusCode: http.StatusConflict,
		Code:       utils.ErrCodeRowVersionConflict,
		Message:    "Record changed, please refresh",
		Details:    current,
		Err:        utils.ErrRowVersionConflict,
	}
}

// resolveOwner turns the raw ownerId from a request into an existing user.
func resolveOwner(ctx context.Context, users repositories.UserRepository, raw string) (*models.User, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, invalidOwnerError("Missing ownerId")
	}
	ownerID, err := uuid.Parse(raw)
	if err != nil {
		return nil, invalidOwnerError("Invalid ownerId")
	}
	owner, err := users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, internalError("Failed to load owner", err)
	}
	if owner == nil {
		return nil, invalidOwnerError("Unknown ownerId")
	}
	return owner, nil
}
