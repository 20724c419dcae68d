package httpapi

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/normalize"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func uploadFile(t *testing.T, router http.Handler, kind, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("kind", kind))
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/dataset", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func newUploadRouter(t *testing.T) (*Router, repository.PropertiesRepo, repository.TenantsRepo) {
	t.Helper()
	props := newPropertiesRepo(t)
	tenants := newTenantsRepo(t)
	router := NewRouter(zap.NewNop())
	router.RegisterUploadRoutes(NewUploadHandler(props, tenants, zap.NewNop()))
	return router, props, tenants
}

func TestUpload_TenantCSV(t *testing.T) {
	router, _, tenants := newUploadRouter(t)

	csvData := "Customer Name,Mobile,BHK,Budget\n" +
		"Ravi,7095288950,2 BHK,15000-20000\n" +
		"Meena,98660 11222,3 BHK,30000\n"
	rec := uploadFile(t, router, "tenants", "customers.csv", []byte(csvData))
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeResult[uploadResult](t, rec)
	require.Equal(t, ResultSuccess, result.Code)
	assert.Equal(t, 2, result.Result.Inserted)
	assert.Len(t, result.Result.Preview, 2)

	// Name and phone columns found, no email: two thirds complete.
	health := result.Result.Health
	assert.True(t, health.HasName)
	assert.True(t, health.HasPhone)
	assert.False(t, health.HasEmail)
	assert.Equal(t, 67, health.CompletenessScore)

	stored, err := tenants.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Ravi", stored[0].Name)
	assert.Equal(t, "7095288950", stored[0].Phone)
	assert.Equal(t, "2", stored[0].Bedrooms)
	assert.Equal(t, "15000", stored[0].BudgetMin)
	assert.Equal(t, "20000", stored[0].BudgetMax)

	// A bare ceiling budget fills only the max.
	assert.Empty(t, stored[1].BudgetMin)
	assert.Equal(t, "30000", stored[1].BudgetMax)
}

func TestUpload_PropertyXLSX(t *testing.T) {
	router, props, _ := newUploadRouter(t)

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	require.NoError(t, wb.SetSheetRow(sheet, "A1", &[]any{"Location", "Area", "Rent", "BHKtype"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A2", &[]any{"Hyderabad", "Kondapur", "25000", "3 BHK"}))
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	rec := uploadFile(t, router, "properties", "listings.xlsx", buf.Bytes())
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeResult[uploadResult](t, rec)
	assert.Equal(t, 1, result.Result.Inserted)

	stored, err := props.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Hyderabad", stored[0].City)
	assert.Equal(t, "Kondapur", stored[0].Locality)
	assert.Equal(t, "25000", stored[0].Rent)
	assert.Equal(t, "3", stored[0].Bedrooms)
	assert.Equal(t, "available", stored[0].Status)
}

func TestUpload_EmptyFile(t *testing.T) {
	router, _, _ := newUploadRouter(t)

	rec := uploadFile(t, router, "tenants", "empty.csv", []byte("Customer Name,Mobile\n"))
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeResult[uploadResult](t, rec)
	assert.Equal(t, 0, result.Result.Inserted)
	assert.Equal(t, normalize.HealthReport{}, result.Result.Health)
}

func TestUpload_RejectsUnknownKind(t *testing.T) {
	router, _, _ := newUploadRouter(t)

	rec := uploadFile(t, router, "owners", "owners.csv", []byte("Name\nRavi\n"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
