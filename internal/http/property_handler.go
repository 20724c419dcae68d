package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/match"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type PropertyHandler struct {
	properties repository.PropertiesRepo
	sessions   *Sessions
	logger     *zap.Logger
}

func NewPropertyHandler(properties repository.PropertiesRepo, sessions *Sessions, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{properties: properties, sessions: sessions, logger: logger}
}

// Collection handles GET (list) and POST (create) on /api/properties.
func (h *PropertyHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		props, err := h.properties.List(r.Context())
		if err != nil {
			h.logger.Error("list properties failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("could not list properties"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(props))
	case http.MethodPost:
		var raw map[string]any
		if err := readBodyJSON(r, 1<<20, &raw); err != nil || len(raw) == 0 {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		raw["owner_id"] = h.sessions.Resolve(r)
		created, err := h.properties.Create(r.Context(), raw)
		if err != nil {
			h.logger.Error("create property failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("could not create property"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(created))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ByID handles GET/PUT/DELETE on /api/properties/{id}. A code lookup is
// also accepted: ids never collide with human-assigned codes.
func (h *PropertyHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/properties/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		prop, err := h.properties.Get(r.Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			prop, err = h.properties.GetByCode(r.Context(), id)
		}
		if err != nil {
			writeJSON(w, http.StatusNotFound, Fail("property not found"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(prop))
	case http.MethodPut, http.MethodPatch:
		var patch map[string]any
		if err := readBodyJSON(r, 1<<20, &patch); err != nil || len(patch) == 0 {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		updated, err := h.properties.Update(r.Context(), id, patch)
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("property not found"))
			return
		}
		if err != nil {
			h.logger.Error("update property failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("could not update property"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(updated))
	case http.MethodDelete:
		err := h.properties.Delete(r.Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("property not found"))
			return
		}
		if err != nil {
			h.logger.Error("delete property failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("could not delete property"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]string{"deleted": id}))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Search runs the relaxed criteria matching over available listings.
func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	props, err := h.properties.List(r.Context())
	if err != nil {
		h.logger.Error("list properties failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("could not search properties"))
		return
	}

	q := r.URL.Query()
	if owner := q.Get("owner_id"); owner != "" {
		scoped := props[:0:0]
		for _, p := range props {
			if p.OwnerID == owner {
				scoped = append(scoped, p)
			}
		}
		props = scoped
	}
	query := match.Query{
		City:       q.Get("city"),
		Locality:   q.Get("locality"),
		Bedrooms:   q.Get("bedrooms"),
		BudgetMin:  q.Get("budget_min"),
		BudgetMax:  q.Get("budget_max"),
		Amenities:  q.Get("amenities"),
		OnlyActive: true,
	}
	writeJSON(w, http.StatusOK, Ok(match.SearchProperties(props, query)))
}

// Export streams the full property book as an xlsx workbook.
func (h *PropertyHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	props, err := h.properties.List(r.Context())
	if err != nil {
		h.logger.Error("list properties failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("could not export properties"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []any{
		"property_id", "property_code", "city", "locality", "address",
		"rent", "bedrooms", "amenities", "furnished", "status",
		"owner_name", "owner_phone", "owner_id", "created_at",
	}
	_ = f.SetSheetRow(sheet, "A1", &header)
	for i, p := range props {
		row := []any{
			p.PropertyID, p.PropertyCode, p.City, p.Locality, p.Address,
			p.Rent, p.Bedrooms, p.Amenities, p.Furnished, p.Status,
			p.OwnerName, p.OwnerPhone, p.OwnerID, p.CreatedAt,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheet, cell, &row)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="properties.xlsx"`)
	if err := f.Write(w); err != nil {
		h.logger.Error("write export failed", zap.Error(err))
	}
}
