package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/repository"
	"go.uber.org/zap"
)

type TenantHandler struct {
	tenants repository.TenantsRepo
	logger  *zap.Logger
}

func NewTenantHandler(tenants repository.TenantsRepo, logger *zap.Logger) *TenantHandler {
	return &TenantHandler{tenants: tenants, logger: logger}
}

func (h *TenantHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tenants, err := h.tenants.List(r.Context())
		if err != nil {
			h.logger.Error("list tenants failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("could not list tenants"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(tenants))
	case http.MethodPost:
		var raw map[string]any
		if err := readBodyJSON(r, 1<<20, &raw); err != nil || len(raw) == 0 {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		created, err := h.tenants.Create(r.Context(), raw)
		if err != nil {
			h.logger.Error("create tenant failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("could not create tenant"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(created))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *TenantHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/tenants/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		tenant, err := h.tenants.Get(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusNotFound, Fail("tenant not found"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(tenant))
	case http.MethodPut, http.MethodPatch:
		var patch map[string]any
		if err := readBodyJSON(r, 1<<20, &patch); err != nil || len(patch) == 0 {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		updated, err := h.tenants.Update(r.Context(), id, patch)
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("tenant not found"))
			return
		}
		if err != nil {
			h.logger.Error("update tenant failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("could not update tenant"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(updated))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ByPhone resolves a tenant from any formatting variant of their number.
func (h *TenantHandler) ByPhone(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		writeJSON(w, http.StatusBadRequest, Fail("phone is required"))
		return
	}
	tenant, err := h.tenants.FindByPhone(r.Context(), phone)
	if err != nil {
		writeJSON(w, http.StatusNotFound, Fail("tenant not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(tenant))
}
