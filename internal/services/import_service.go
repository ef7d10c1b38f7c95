package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/poofware/buyer-leads-service/internal/config"
	"github.com/poofware/buyer-leads-service/internal/dtos"
	"github.com/poofware/buyer-leads-service/internal/models"
	"github.com/poofware/buyer-leads-service/internal/repositories"
	"github.com/poofware/buyer-leads-service/internal/utils"
	"github.com/poofware/buyer-leads-service/internal/validation"
)

// The header occupies line 1, so the first data row is reported as row 2.
const firstDataRow = 2

type ImportService struct {
	buyers  repositories.BuyerRepository
	users   repositories.UserRepository
	history *HistoryService
	schema  *validation.BuyerSchema

	maxRows      int
	auditEnabled bool
}

func NewImportService(
	buyers repositories.BuyerRepository,
	users repositories.UserRepository,
	history *HistoryService,
	schema *validation.BuyerSchema,
	cfg *config.Config,
) *ImportService {
	return &ImportService{
		buyers:       buyers,
		users:        users,
		history:      history,
		schema:       schema,
		maxRows:      cfg.ImportMaxRows,
		auditEnabled: cfg.LDFlag_ImportAuditEnabled,
	}
}

// ImportCSV validates every row and inserts the valid ones in a single
// transaction. Invalid rows are reported next to the inserted count.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader, ownerID string) (*dtos.ImportResponse, error) {
	owner, err := resolveOwner(ctx, s.users, ownerID)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Could not read uploaded file",
			Err:        err,
		}
	}

	var rows []*dtos.BuyerCSVRow
	if err := gocsv.UnmarshalBytes(raw, &rows); err != nil {
		return nil, parseError(err)
	}

	if len(rows) > s.maxRows {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeTooManyRows,
			Message:    fmt.Sprintf("Max %d rows allowed", s.maxRows),
			Err:        utils.ErrTooManyRows,
		}
	}

	var (
		valid     []*models.Buyer
		rowErrors = []dtos.ImportRowError{}
	)
	for i, row := range rows {
		payload, problems := s.validateRow(row)
		if len(problems) > 0 {
			rowErrors = append(rowErrors, dtos.ImportRowError{
				Row:     i + firstDataRow,
				Message: strings.Join(problems, ", "),
			})
			continue
		}
		valid = append(valid, newBuyerFromPayload(owner.ID, payload))
	}

	if len(valid) == 0 {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "No valid rows to import",
			Details:    rowErrors,
		}
	}

	if err := s.buyers.CreateMany(ctx, valid); err != nil {
		return nil, internalError("Import failed, no rows were saved", err)
	}

	if s.auditEnabled {
		for _, b := range valid {
			s.history.RecordCreated(ctx, owner.Name, b.Clone())
		}
	}

	utils.Logger.WithField("owner_id", owner.ID).
		Infof("Imported %d buyers (%d rows skipped)", len(valid), len(rowErrors))

	resp := &dtos.ImportResponse{Success: true, Inserted: len(valid)}
	if len(rowErrors) > 0 {
		resp.Errors = rowErrors
	}
	return resp, nil
}

// validateRow coerces one CSV row into a payload and runs the schema.
func (s *ImportService) validateRow(row *dtos.BuyerCSVRow) (dtos.BuyerPayload, []string) {
	var problems []string

	budgetMin, err := parseBudget(row.BudgetMin)
	if err != nil {
		problems = append(problems, "budgetMin must be a number")
	}
	budgetMax, err := parseBudget(row.BudgetMax)
	if err != nil {
		problems = append(problems, "budgetMax must be a number")
	}

	in := dtos.BuyerPayload{
		FullName:     row.FullName,
		Email:        row.Email,
		Phone:        row.Phone,
		City:         row.City,
		PropertyType: row.PropertyType,
		BHK:          utils.NormalizeEnum(utils.EnumBHK, strings.TrimSpace(row.BHK)),
		Purpose:      row.Purpose,
		BudgetMin:    budgetMin,
		BudgetMax:    budgetMax,
		Timeline:     utils.NormalizeEnum(utils.EnumTimeline, strings.TrimSpace(row.Timeline)),
		Source:       utils.NormalizeEnum(utils.EnumSource, strings.TrimSpace(row.Source)),
		Status:       row.Status,
		Notes:        row.Notes,
		Tags:         splitTags(row.Tags),
	}

	payload, details := s.schema.Validate(in)
	for _, d := range details {
		problems = append(problems, d.Message)
	}
	if len(problems) > 0 {
		return dtos.BuyerPayload{}, problems
	}
	return payload, nil
}

func parseBudget(cell string) (*float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, err
	}
	// ParseFloat accepts "Inf" and "NaN".
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, fmt.Errorf("budget %q is not a finite number", cell)
	}
	return &v, nil
}

func splitTags(cell string) []string {
	tags := []string{}
	for _, t := range strings.Split(cell, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseError(err error) error {
	detail := dtos.ImportRowError{Message: err.Error()}
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		detail.Row = pe.Line
		detail.Message = pe.Err.Error()
	}
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeCSVParse,
		Message:    "Could not parse CSV file",
		Details:    []dtos.ImportRowError{detail},
		Err:        fmt.Errorf("%w: %v", utils.ErrCSVParse, err),
	}
}
