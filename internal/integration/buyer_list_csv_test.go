//go:build integration

package integration

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/buyer-leads-service/internal/dtos"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

func TestListFiltersAndPagination(t *testing.T) {
	owner := login(t, "Lister "+uuid.NewString()[:8])
	marker := "Zq" + strings.ReplaceAll(uuid.NewString()[:6], "-", "")

	for i := 0; i < 12; i++ {
		createBuyer(t, owner.ID, fmt.Sprintf("%s %02d", marker, i))
	}

	q := url.Values{"query": {strings.ToLower(marker)}, "city": {"Chandigarh"}}
	resp := doJSON(t, http.MethodGet, "/api/v1/buyers?"+q.Encode(), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page1 := decode[dtos.BuyerListResponse](t, resp)
	assert.Equal(t, 12, page1.Total)
	assert.Equal(t, 2, page1.TotalPages)
	require.Len(t, page1.Data, 10)
	// Most recently modified first.
	assert.Equal(t, marker+" 11", page1.Data[0].FullName)

	q.Set("page", "2")
	resp = doJSON(t, http.MethodGet, "/api/v1/buyers?"+q.Encode(), nil, nil)
	page2 := decode[dtos.BuyerListResponse](t, resp)
	assert.Len(t, page2.Data, 2)

	q.Set("city", "Mohali")
	q.Del("page")
	resp = doJSON(t, http.MethodGet, "/api/v1/buyers?"+q.Encode(), nil, nil)
	assert.Zero(t, decode[dtos.BuyerListResponse](t, resp).Total)

	// LIKE wildcards in the query are literal.
	resp = doJSON(t, http.MethodGet, "/api/v1/buyers?query="+url.QueryEscape(marker+"%"), nil, nil)
	assert.Zero(t, decode[dtos.BuyerListResponse](t, resp).Total)
}

func TestImportThenExport(t *testing.T) {
	owner := login(t, "Importer "+uuid.NewString()[:8])
	marker := "Imp" + strings.ReplaceAll(uuid.NewString()[:6], "-", "")

	body := "fullName,email,phone,city,propertyType,bhk,purpose,budgetMin,budgetMax,timeline,source,notes,tags,status\n" +
		marker + " One,,9876543210,Mohali,Villa,4,Buy,100,200,3-6m,Walk In,,\"a, b\",\n" +
		marker + " Two,bad-email,9876543210,Mohali,Plot,,Buy,,,Exploring,Call,,,\n" +
		marker + " Three,,9876543211,Panchkula,Land,,Rent,,,>6 Months,Referral,,,Visited\n"

	resp := uploadCSV(t, owner.ID, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[dtos.ImportResponse](t, resp)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Inserted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, "Invalid email", result.Errors[0].Message)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/v1/buyers/export?query="+url.QueryEscape(marker), nil)
	require.NoError(t, err)
	exp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer exp.Body.Close()

	require.Equal(t, http.StatusOK, exp.StatusCode)
	assert.Contains(t, exp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, exp.Header.Get("Content-Disposition"), "attachment")

	raw, err := io.ReadAll(exp.Body)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "fullName", records[0][0])

	byName := map[string][]string{}
	for _, r := range records[1:] {
		byName[r[0]] = r
	}
	one := byName[marker+" One"]
	require.NotNil(t, one)
	assert.Equal(t, "Four", one[5])
	assert.Equal(t, "M3_6", one[9])
	assert.Equal(t, "Walk_in", one[10])
	assert.Equal(t, "a, b", one[12])
	assert.Equal(t, utils.StatusNew, one[13])

	three := byName[marker+" Three"]
	require.NotNil(t, three)
	assert.Equal(t, "", three[5])
	assert.Equal(t, "M6_plus", three[9])
	assert.Equal(t, "Visited", three[13])
}

func TestImportRejections(t *testing.T) {
	owner := login(t, "Rejects "+uuid.NewString()[:8])
	header := "fullName,email,phone,city,propertyType,bhk,purpose,budgetMin,budgetMax,timeline,source,notes,tags,status\n"

	resp := uploadCSV(t, owner.ID, header+"X,,1,Nowhere,Plot,,Buy,,,Exploring,Call,,,\n")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var sb strings.Builder
	sb.WriteString(header)
	for i := 0; i < 201; i++ {
		sb.WriteString("Bulk Buyer,,9876543210,Mohali,Plot,,Buy,,,Exploring,Call,,,\n")
	}
	resp = uploadCSV(t, owner.ID, sb.String())
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Max 200 rows allowed", decode[utils.ErrorResponse](t, resp).Message)
}

func TestCreateRateLimit(t *testing.T) {
	owner := login(t, "Limiter "+uuid.NewString()[:8])
	client := map[string]string{"X-Forwarded-For": "192.0.2." + fmt.Sprint(uuid.New().ID()%250+1)}

	for i := 0; i < 10; i++ {
		resp := doJSON(t, http.MethodPost, "/api/v1/buyers", dtos.CreateBuyerRequest{
			BuyerPayload: samplePayload("Limited Buyer"),
			OwnerID:      owner.ID,
		}, client)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "request %d", i+1)
	}

	resp := doJSON(t, http.MethodPost, "/api/v1/buyers", dtos.CreateBuyerRequest{
		BuyerPayload: samplePayload("Limited Buyer"),
		OwnerID:      owner.ID,
	}, client)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}
