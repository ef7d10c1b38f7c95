package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/poofware/buyer-leads-service/internal/config"
	"github.com/poofware/buyer-leads-service/internal/dtos"
	"github.com/poofware/buyer-leads-service/internal/models"
	"github.com/poofware/buyer-leads-service/internal/utils"
	"github.com/poofware/buyer-leads-service/internal/validation"
)

const csvHeader = "fullName,email,phone,city,propertyType,bhk,purpose,budgetMin,budgetMax,timeline,source,notes,tags,status\n"

type importFixture struct {
	buyers  *mockBuyerRepo
	users   *mockUserRepo
	history *mockHistoryRepo
	owner   *models.User
}

func newImportFixture() *importFixture {
	f := &importFixture{
		buyers:  &mockBuyerRepo{},
		users:   &mockUserRepo{},
		history: &mockHistoryRepo{},
		owner:   &models.User{ID: uuid.New(), Name: "Importer"},
	}
	f.users.On("GetByID", mock.Anything, f.owner.ID).Return(f.owner, nil)
	return f
}

func (f *importFixture) service(cfg *config.Config) *ImportService {
	return NewImportService(f.buyers, f.users, NewHistoryService(f.history), validation.NewBuyerSchema(), cfg)
}

func TestImportCSV_MixedRows(t *testing.T) {
	f := newImportFixture()
	var inserted []*models.Buyer
	f.buyers.On("CreateMany", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { inserted = args.Get(1).([]*models.Buyer) }).
		Return(nil)

	body := csvHeader +
		`Asha Verma,,9876543210,Mohali,Apartment,2,Buy,5000000,7000000,0-3 Months,Walk In,,"hot, follow-up,",` + "\n" +
		"J,,123,Mohali,Plot,,Buy,abc,,3-6m,Website,,,\n" +
		"Ravi Kumar,ravi@example.com,9123456780,Zirakpur,Plot,,Rent,,,>6m,Call,corner plot,,Qualified\n"

	resp, err := f.service(testConfig()).ImportCSV(context.Background(), strings.NewReader(body), f.owner.ID.String())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Inserted)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 3, resp.Errors[0].Row)
	assert.Equal(t,
		"budgetMin must be a number, Full name must be at least 2 characters, Phone must be 10-15 digits",
		resp.Errors[0].Message,
	)

	require.Len(t, inserted, 2)
	asha, ravi := inserted[0], inserted[1]

	assert.Equal(t, f.owner.ID, asha.OwnerID)
	require.NotNil(t, asha.BHK)
	assert.Equal(t, "Two", *asha.BHK)
	assert.Equal(t, "M0_3", asha.Timeline)
	assert.Equal(t, "Walk_in", asha.Source)
	assert.Equal(t, utils.StatusNew, asha.Status)
	assert.Equal(t, []string{"hot", "follow-up"}, asha.Tags)
	assert.Equal(t, 5000000.0, *asha.BudgetMin)
	assert.Nil(t, asha.Email)

	assert.Equal(t, "M6_plus", ravi.Timeline)
	assert.Equal(t, "Qualified", ravi.Status)
	assert.Nil(t, ravi.BHK)
	assert.Nil(t, ravi.BudgetMin)
	assert.Equal(t, []string{}, ravi.Tags)
	require.NotNil(t, ravi.Email)
	assert.Equal(t, "ravi@example.com", *ravi.Email)

	// Import is not audited unless the flag is on.
	f.history.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestImportCSV_AuditFlagRecordsHistory(t *testing.T) {
	f := newImportFixture()
	f.buyers.On("CreateMany", mock.Anything, mock.Anything).Return(nil)
	f.history.On("Create", mock.Anything, mock.MatchedBy(func(h *models.BuyerHistory) bool {
		return h.ChangedBy == "Importer"
	})).Return(nil)

	cfg := testConfig()
	cfg.LDFlag_ImportAuditEnabled = true

	body := csvHeader + "Ravi Kumar,,9123456780,Zirakpur,Plot,,Rent,,,Exploring,Call,,,\n"
	_, err := f.service(cfg).ImportCSV(context.Background(), strings.NewReader(body), f.owner.ID.String())
	require.NoError(t, err)
	f.history.AssertNumberOfCalls(t, "Create", 1)
}

func TestImportCSV_TooManyRows(t *testing.T) {
	f := newImportFixture()

	var sb strings.Builder
	sb.WriteString(csvHeader)
	for i := 0; i < 201; i++ {
		fmt.Fprintf(&sb, "Buyer %d,,98765432%02d,Mohali,Plot,,Buy,,,Exploring,Call,,,\n", i, i%100)
	}

	_, err := f.service(testConfig()).ImportCSV(context.Background(), strings.NewReader(sb.String()), f.owner.ID.String())
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeTooManyRows)
	assert.Equal(t, "Max 200 rows allowed", appErr.Message)
	f.buyers.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestImportCSV_ZeroValidRows(t *testing.T) {
	f := newImportFixture()

	body := csvHeader + "J,,1,Delhi,Plot,,Buy,,,Exploring,Call,,,\n"
	_, err := f.service(testConfig()).ImportCSV(context.Background(), strings.NewReader(body), f.owner.ID.String())

	appErr := requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
	rowErrors, ok := appErr.Details.([]dtos.ImportRowError)
	require.True(t, ok)
	require.Len(t, rowErrors, 1)
	assert.Equal(t, 2, rowErrors[0].Row)
	f.buyers.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestImportCSV_MalformedFile(t *testing.T) {
	f := newImportFixture()

	body := "fullName,phone\nJohn,98\"76\n"
	_, err := f.service(testConfig()).ImportCSV(context.Background(), strings.NewReader(body), f.owner.ID.String())

	requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeCSVParse)
	assert.ErrorIs(t, err, utils.ErrCSVParse)
}

func TestImportCSV_TransactionFailure(t *testing.T) {
	f := newImportFixture()
	f.buyers.On("CreateMany", mock.Anything, mock.Anything).Return(errors.New("unique violation"))

	body := csvHeader + "Ravi Kumar,,9123456780,Zirakpur,Plot,,Rent,,,Exploring,Call,,,\n"
	_, err := f.service(testConfig()).ImportCSV(context.Background(), strings.NewReader(body), f.owner.ID.String())
	requireAppError(t, err, http.StatusInternalServerError, utils.ErrCodeInternal)
}

func TestImportCSV_MissingOwner(t *testing.T) {
	f := newImportFixture()
	_, err := f.service(testConfig()).ImportCSV(context.Background(), strings.NewReader(csvHeader), "")
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeInvalidPayload)
	assert.Equal(t, "Missing ownerId", appErr.Message)
}

func TestImportCSV_RejectsNonFiniteBudgets(t *testing.T) {
	for _, cell := range []string{"Inf", "+Inf", "-Infinity", "NaN"} {
		t.Run(cell, func(t *testing.T) {
			f := newImportFixture()

			body := csvHeader + "Ravi Kumar,,9123456780,Zirakpur,Plot,,Rent,0," + cell + ",Exploring,Call,,,\n"
			_, err := f.service(testConfig()).ImportCSV(context.Background(), strings.NewReader(body), f.owner.ID.String())

			appErr := requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
			rowErrors, ok := appErr.Details.([]dtos.ImportRowError)
			require.True(t, ok)
			require.Len(t, rowErrors, 1)
			assert.Equal(t, 2, rowErrors[0].Row)
			assert.Equal(t, "budgetMax must be a number", rowErrors[0].Message)
			f.buyers.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
		})
	}
}

func TestImportCSV_InsertedBuyersEncodeAsJSON(t *testing.T) {
	f := newImportFixture()
	var inserted []*models.Buyer
	f.buyers.On("CreateMany", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { inserted = args.Get(1).([]*models.Buyer) }).
		Return(nil)

	body := csvHeader +
		"Ravi Kumar,,9123456780,Zirakpur,Plot,,Rent,0,Infinity,Exploring,Call,,,\n" +
		"Meena Rao,,9123456781,Zirakpur,Plot,,Rent,0,1e6,Exploring,Call,,,\n"
	resp, err := f.service(testConfig()).ImportCSV(context.Background(), strings.NewReader(body), f.owner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Inserted)

	require.Len(t, inserted, 1)
	_, err = json.Marshal(inserted[0])
	assert.NoError(t, err)
}
