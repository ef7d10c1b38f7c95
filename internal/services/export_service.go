package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/poofware/buyer-leads-service/internal/dtos"
	"github.com/poofware/buyer-leads-service/internal/models"
	"github.com/poofware/buyer-leads-service/internal/repositories"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

type ExportService struct {
	buyers repositories.BuyerRepository
}

func NewExportService(buyers repositories.BuyerRepository) *ExportService {
	return &ExportService{buyers: buyers}
}

// ExportCSV renders every buyer matching filter, most recently modified
// first. The output uses stored codes so it can be fed back into import.
func (s *ExportService) ExportCSV(ctx context.Context, filter models.BuyerFilter) ([]byte, error) {
	buyers, err := s.buyers.ListAll(ctx, filter)
	if err != nil {
		return nil, internalError("Failed to export buyers", err)
	}

	rows := make([]*dtos.BuyerCSVRow, 0, len(buyers))
	for _, b := range buyers {
		rows = append(rows, toCSVRow(b))
	}

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, internalError("Failed to export buyers", err)
	}
	return out, nil
}

func toCSVRow(b *models.Buyer) *dtos.BuyerCSVRow {
	return &dtos.BuyerCSVRow{
		FullName:     b.FullName,
		Email:        utils.Val(b.Email),
		Phone:        b.Phone,
		City:         b.City,
		PropertyType: b.PropertyType,
		BHK:          utils.Val(b.BHK),
		Purpose:      b.Purpose,
		BudgetMin:    formatBudget(b.BudgetMin),
		BudgetMax:    formatBudget(b.BudgetMax),
		Timeline:     b.Timeline,
		Source:       b.Source,
		Notes:        utils.Val(b.Notes),
		Tags:         strings.Join(b.Tags, ", "),
		Status:       b.Status,
		UpdatedAt:    b.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func formatBudget(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
