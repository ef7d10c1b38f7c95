package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/poofware/buyer-leads-service/internal/models"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

// buyerIDFromPath reads the {id} route variable.
func buyerIDFromPath(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Invalid buyer id",
			Err:        err,
		}
	}
	return id, nil
}

// filterFromQuery reads the list/export filters shared by both endpoints.
func filterFromQuery(r *http.Request) models.BuyerFilter {
	q := r.URL.Query()
	return models.BuyerFilter{
		City:         strings.TrimSpace(q.Get("city")),
		PropertyType: strings.TrimSpace(q.Get("propertyType")),
		Status:       strings.TrimSpace(q.Get("status")),
		Timeline:     strings.TrimSpace(q.Get("timeline")),
		Query:        strings.TrimSpace(q.Get("query")),
	}
}

func pageFromQuery(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
