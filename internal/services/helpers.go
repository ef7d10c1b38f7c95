package services

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/poofware/buyer-leads-service/internal/dtos"
	"github.com/poofware/buyer-leads-service/internal/models"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

func newBuyerFromPayload(ownerID uuid.UUID, p dtos.BuyerPayload) *models.Buyer {
	b := &models.Buyer{
		ID:      uuid.New(),
		OwnerID: ownerID,
	}
	applyPayload(b, p)
	return b
}

// applyPayload copies a validated payload onto b. Blank optional text
// becomes NULL.
func applyPayload(b *models.Buyer, p dtos.BuyerPayload) {
	b.FullName = p.FullName
	b.Email = utils.NilIfBlank(p.Email)
	b.Phone = p.Phone
	b.City = p.City
	b.PropertyType = p.PropertyType
	b.BHK = utils.NilIfBlank(p.BHK)
	b.Purpose = p.Purpose
	b.BudgetMin = p.BudgetMin
	b.BudgetMax = p.BudgetMax
	b.Timeline = p.Timeline
	b.Source = p.Source
	b.Status = p.Status
	b.Notes = utils.NilIfBlank(p.Notes)
	b.Tags = p.Tags
	if b.Tags == nil {
		b.Tags = []string{}
	}
}

func validationError(details []dtos.ValidationErrorDetail) error {
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeValidation,
		Message:    "Validation failed",
		Details:    details,
	}
}

func internalError(msg string, err error) error {
	return &utils.AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       utils.ErrCodeInternal,
		Message:    msg,
		Err:        err,
	}
}

func notFoundError(msg string) error {
	return &utils.AppError{
		StatusCode: http.StatusNotFound,
		Code:       utils.ErrCodeNotFound,
		Message:    msg,
		Err:        utils.ErrNotFound,
	}
}

func invalidOwnerError(msg string) error {
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeInvalidPayload,
		Message:    msg,
		Err:        utils.ErrInvalidOwner,
	}
}
