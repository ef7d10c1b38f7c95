package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/poofware/buyer-leads-service/internal/dtos"
	"github.com/poofware/buyer-leads-service/internal/services"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

type LoginController struct {
	userService *services.UserService
}

func NewLoginController(userService *services.UserService) *LoginController {
	return &LoginController{userService: userService}
}

// POST /api/v1/login
func (c *LoginController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	user, err := c.userService.Login(r.Context(), req.Name)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.LoginResponse{ID: user.ID.String(), Name: user.Name})
}
