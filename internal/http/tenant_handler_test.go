package httpapi

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTenantRouter(t *testing.T) *Router {
	t.Helper()
	router := NewRouter(zap.NewNop())
	router.RegisterTenantRoutes(NewTenantHandler(newTenantsRepo(t), zap.NewNop()))
	return router
}

func TestTenants_CreateAndLookupByPhoneVariant(t *testing.T) {
	router := newTenantRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/tenants", map[string]any{
		"name":  "Ravi",
		"phone": "07095288950",
		"city":  "Hyderabad",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeResult[domain.Tenant](t, rec)
	assert.NotEmpty(t, created.Result.TenantID)
	assert.Equal(t, "07095288950", created.Result.WhatsappNumber, "whatsapp defaults to phone")

	// The stored number has a leading zero; the lookup carries a country code.
	q := url.QueryEscape("+91 7095288950")
	rec = doRequest(t, router, http.MethodGet, "/api/tenants/by-phone?phone="+q, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	found := decodeResult[domain.Tenant](t, rec)
	assert.Equal(t, created.Result.TenantID, found.Result.TenantID)
}

func TestTenants_ByPhoneMissing(t *testing.T) {
	router := newTenantRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/tenants/by-phone?phone=12345", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/tenants/by-phone", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTenants_Update(t *testing.T) {
	router := newTenantRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/tenants", map[string]any{
		"name": "Meena", "phone": "9866011222",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	id := decodeResult[domain.Tenant](t, rec).Result.TenantID

	rec = doRequest(t, router, http.MethodPut, "/api/tenants/"+id, map[string]any{
		"budget_min": "20000", "budget_max": "25000", "localities": []string{"Kondapur", "Madhapur"},
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeResult[domain.Tenant](t, rec)
	assert.Equal(t, "20000", updated.Result.BudgetMin)
	assert.Equal(t, "Kondapur, Madhapur", updated.Result.Localities)
}
