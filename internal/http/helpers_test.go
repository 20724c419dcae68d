package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/repository"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResult[T any](t *testing.T, rec *httptest.ResponseRecorder) Result[T] {
	t.Helper()
	var out Result[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func newPropertiesRepo(t *testing.T) repository.PropertiesRepo {
	t.Helper()
	repo, err := repository.NewCSVPropertiesRepo(filepath.Join(t.TempDir(), "properties.csv"))
	require.NoError(t, err)
	return repo
}

func newTenantsRepo(t *testing.T) repository.TenantsRepo {
	t.Helper()
	repo, err := repository.NewCSVTenantsRepo(filepath.Join(t.TempDir(), "tenants.csv"))
	require.NoError(t, err)
	return repo
}
