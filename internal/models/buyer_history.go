package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BuyerHistory is one append-only audit entry for a buyer.
type BuyerHistory struct {
	ID        uuid.UUID       `json:"id"`
	BuyerID   uuid.UUID       `json:"buyerId"`
	ChangedBy string          `json:"changedBy"`
	ChangedAt time.Time       `json:"changedAt"`
	Diff      json.RawMessage `json:"diff"` // JSONB: {created} or {old,new}
}

// HistoryDiff is the payload stored in BuyerHistory.Diff.
type HistoryDiff struct {
	Created *Buyer `json:"created,omitempty"`
	Old     *Buyer `json:"old,omitempty"`
	New     *Buyer `json:"new,omitempty"`
}
