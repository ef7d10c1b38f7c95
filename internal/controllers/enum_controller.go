package controllers

import (
	"net/http"

	"github.com/poofware/buyer-leads-service/internal/dtos"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

type EnumController struct {
	tables dtos.EnumsResponse
}

func NewEnumController() *EnumController {
	tables := dtos.EnumsResponse{}
	for _, field := range utils.EnumFields() {
		options := []dtos.EnumOption{}
		for _, code := range utils.EnumCodes(field) {
			options = append(options, dtos.EnumOption{Code: code, Label: utils.EnumLabel(field, code)})
		}
		tables[string(field)] = options
	}
	return &EnumController{tables: tables}
}

// GET /api/v1/enums
func (c *EnumController) ListEnumsHandler(w http.ResponseWriter, _ *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.tables)
}
