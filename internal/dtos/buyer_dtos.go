package dtos

import (
	"time"

	"github.com/poofware/buyer-leads-service/internal/models"
)

// BuyerPayload is the editable shape of a buyer lead as sent by forms and
// produced from CSV rows. Enum fields carry stored codes.
type BuyerPayload struct {
	FullName     string   `json:"fullName" validate:"min=2"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Phone        string   `json:"phone" validate:"phone"`
	City         string   `json:"city" validate:"required,enum=city"`
	PropertyType string   `json:"propertyType" validate:"enum=propertyType"`
	BHK          string   `json:"bhk" validate:"omitempty,enum=bhk"`
	Purpose      string   `json:"purpose" validate:"required,enum=purpose"`
	BudgetMin    *float64 `json:"budgetMin" validate:"omitempty,finite,gte=0"`
	BudgetMax    *float64 `json:"budgetMax" validate:"omitempty,finite,gte=0"`
	Timeline     string   `json:"timeline" validate:"required,enum=timeline"`
	Source       string   `json:"source" validate:"required,enum=source"`
	Status       string   `json:"status" validate:"omitempty,enum=status"`
	Notes        string   `json:"notes"`
	Tags         []string `json:"tags"`
}

type CreateBuyerRequest struct {
	BuyerPayload
	OwnerID   string `json:"ownerId"`
	ChangedBy string `json:"changedBy"`
}

type UpdateBuyerRequest struct {
	BuyerPayload
	// UpdatedAt is the concurrency token captured when the record was loaded.
	UpdatedAt *time.Time `json:"updatedAt"`
	ChangedBy string     `json:"changedBy"`
}

type BuyerListResponse struct {
	Data       []*models.Buyer `json:"data"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

type BuyerDetailResponse struct {
	Buyer   *models.Buyer          `json:"buyer"`
	History []*models.BuyerHistory `json:"history"`
}

type ConfirmationResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type RateLimitDetails struct {
	RetryAfterSeconds int `json:"retryAfterSeconds"`
}
