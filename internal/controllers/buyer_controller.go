package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/poofware/buyer-leads-service/internal/dtos"
	"github.com/poofware/buyer-leads-service/internal/services"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

type BuyerController struct {
	buyerService *services.BuyerService
}

func NewBuyerController(buyerService *services.BuyerService) *BuyerController {
	return &BuyerController{buyerService: buyerService}
}

// GET /api/v1/buyers
func (c *BuyerController) ListBuyersHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.buyerService.ListBuyers(r.Context(), filterFromQuery(r), pageFromQuery(r))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/buyers
func (c *BuyerController) CreateBuyerHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateBuyerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	buyer, err := c.buyerService.CreateBuyer(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.Logger.WithField("handler", "CreateBuyerHandler").Infof("Created buyer %s", buyer.ID)
	utils.RespondWithJSON(w, http.StatusCreated, buyer)
}

// GET /api/v1/buyers/{id}
func (c *BuyerController) GetBuyerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := buyerIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, err := c.buyerService.GetBuyer(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PUT /api/v1/buyers/{id}
func (c *BuyerController) UpdateBuyerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := buyerIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateBuyerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	buyer, err := c.buyerService.UpdateBuyer(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, buyer)
}

// DELETE /api/v1/buyers/{id}
func (c *BuyerController) DeleteBuyerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := buyerIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	if err := c.buyerService.DeleteBuyer(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.Logger.WithField("handler", "DeleteBuyerHandler").Infof("Deleted buyer %s", id)
	utils.RespondWithJSON(w, http.StatusOK, dtos.ConfirmationResponse{
		Message: "Buyer deleted",
		ID:      id.String(),
	})
}

// GET /api/v1/buyers/{id}/history
func (c *BuyerController) ListHistoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := buyerIDFromPath(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	entries, err := c.buyerService.ListHistory(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, entries)
}
