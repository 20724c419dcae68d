package httpapi

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newPropertyRouter(t *testing.T) *Router {
	t.Helper()
	sessions := NewSessions(store.NewMemoryKV(), false)
	router := NewRouter(zap.NewNop())
	router.RegisterPropertyRoutes(NewPropertyHandler(newPropertiesRepo(t), sessions, zap.NewNop()))
	return router
}

func TestProperties_CreateAndGet(t *testing.T) {
	router := newPropertyRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/properties", map[string]any{
		"city":      "Hyderabad",
		"locality":  "Gachibowli",
		"rent":      "22000",
		"bedrooms":  "2 BHK",
		"amenities": []string{"gym", "parking"},
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeResult[domain.Property](t, rec)
	require.Equal(t, ResultSuccess, created.Code)
	assert.NotEmpty(t, created.Result.PropertyID)
	assert.Equal(t, "available", created.Result.Status)
	assert.Equal(t, "2", created.Result.Bedrooms)
	assert.Equal(t, "gym, parking", created.Result.Amenities)
	assert.Equal(t, domain.GuestUserID, created.Result.OwnerID)

	rec = doRequest(t, router, http.MethodGet, "/api/properties/"+created.Result.PropertyID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/properties", map[string]any{
		"property_code": "HM-101", "city": "Hyderabad", "rent": "24000",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	coded := decodeResult[domain.Property](t, rec)

	// Code lookup is case-insensitive.
	rec = doRequest(t, router, http.MethodGet, "/api/properties/hm-101", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	byCode := decodeResult[domain.Property](t, rec)
	assert.Equal(t, coded.Result.PropertyID, byCode.Result.PropertyID)
}

func TestProperties_UpdateAndDelete(t *testing.T) {
	router := newPropertyRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/properties", map[string]any{
		"city": "Hyderabad", "rent": "20000",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	id := decodeResult[domain.Property](t, rec).Result.PropertyID

	rec = doRequest(t, router, http.MethodPut, "/api/properties/"+id, map[string]any{
		"status": "occupied",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeResult[domain.Property](t, rec)
	assert.Equal(t, "occupied", updated.Result.Status)

	rec = doRequest(t, router, http.MethodDelete, "/api/properties/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/properties/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProperties_SearchFiltersAndSorts(t *testing.T) {
	router := newPropertyRouter(t)

	for _, body := range []map[string]any{
		{"city": "Hyderabad", "locality": "Kondapur", "rent": "25000", "bedrooms": "2"},
		{"city": "Hyderabad", "locality": "Gachibowli", "rent": "18000", "bedrooms": "2"},
		{"city": "Hyderabad", "locality": "Gachibowli", "rent": "21000", "bedrooms": "2", "status": "occupied"},
	} {
		rec := doRequest(t, router, http.MethodPost, "/api/properties", body, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/api/properties/search?city=hyderabad", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	found := decodeResult[[]domain.Property](t, rec)

	// The occupied unit is filtered out; the rest come back rent ascending.
	require.Len(t, found.Result, 2)
	assert.Equal(t, "18000", found.Result[0].Rent)
	assert.Equal(t, "25000", found.Result[1].Rent)
}

func TestProperties_Export(t *testing.T) {
	router := newPropertyRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/properties", map[string]any{
		"property_code": "HM-7", "city": "Hyderabad", "rent": "20000",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/properties/export", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "properties.xlsx")

	wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(wb.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "property_id", rows[0][0])
	assert.Equal(t, "HM-7", rows[1][1])
}
