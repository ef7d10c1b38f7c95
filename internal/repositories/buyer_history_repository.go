package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/buyer-leads-service/internal/models"
)

type BuyerHistoryRepository interface {
	Create(ctx context.Context, h *models.BuyerHistory) error
	// ListByBuyerID returns newest first; limit <= 0 means no limit.
	ListByBuyerID(ctx context.Context, buyerID uuid.UUID, limit int) ([]*models.BuyerHistory, error)
}

type buyerHistoryRepo struct {
	db DB
}

func NewBuyerHistoryRepository(db DB) BuyerHistoryRepository {
	return &buyerHistoryRepo{db: db}
}

func (r *buyerHistoryRepo) Create(ctx context.Context, h *models.BuyerHistory) error {
	q := `
        INSERT INTO buyer_history (id, buyer_id, changed_by, diff, changed_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING changed_at
    `
	return r.db.QueryRow(ctx, q, h.ID, h.BuyerID, h.ChangedBy, h.Diff).Scan(&h.ChangedAt)
}

func (r *buyerHistoryRepo) ListByBuyerID(ctx context.Context, buyerID uuid.UUID, limit int) ([]*models.BuyerHistory, error) {
	q := `
        SELECT id, buyer_id, changed_by, changed_at, diff
        FROM buyer_history
        WHERE buyer_id=$1
        ORDER BY changed_at DESC, id
    `
	args := []any{buyerID}
	if limit > 0 {
		q += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.BuyerHistory{}
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func scanHistory(row pgx.Row) (*models.BuyerHistory, error) {
	var h models.BuyerHistory
	var diff []byte
	if err := row.Scan(&h.ID, &h.BuyerID, &h.ChangedBy, &h.ChangedAt, &diff); err != nil {
		return nil, err
	}
	h.Diff = diff
	return &h, nil
}
