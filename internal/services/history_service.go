package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/poofware/buyer-leads-service/internal/models"
	"github.com/poofware/buyer-leads-service/internal/repositories"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

// HistoryService appends audit entries after a buyer write has committed.
// Recording is best-effort: failures are logged and never returned.
type HistoryService struct {
	repo repositories.BuyerHistoryRepository
}

func NewHistoryService(repo repositories.BuyerHistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

func (s *HistoryService) RecordCreated(ctx context.Context, changedBy string, created *models.Buyer) {
	s.record(ctx, created.ID, changedBy, models.HistoryDiff{Created: created})
}

func (s *HistoryService) RecordUpdated(ctx context.Context, changedBy string, old, updated *models.Buyer) {
	s.record(ctx, updated.ID, changedBy, models.HistoryDiff{Old: old, New: updated})
}

// ListForBuyer returns entries newest first; limit <= 0 returns all of them.
func (s *HistoryService) ListForBuyer(ctx context.Context, buyerID uuid.UUID, limit int) ([]*models.BuyerHistory, error) {
	return s.repo.ListByBuyerID(ctx, buyerID, limit)
}

func (s *HistoryService) record(ctx context.Context, buyerID uuid.UUID, changedBy string, diff models.HistoryDiff) {
	raw, err := json.Marshal(diff)
	if err != nil {
		utils.Logger.WithError(err).WithField("buyer_id", buyerID).Warn("Failed to encode buyer history diff")
		return
	}

	entry := &models.BuyerHistory{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		ChangedBy: changedBy,
		Diff:      raw,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		utils.Logger.WithError(err).WithField("buyer_id", buyerID).Warn("Failed to record buyer history")
	}
}
