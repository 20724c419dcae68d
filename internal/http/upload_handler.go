package httpapi

import (
	"encoding/csv"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/normalize"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const maxUploadBytes = 32 << 20

// UploadHandler ingests a property or tenant dataset from a CSV or xlsx
// file. Rows are normalized through the shared alias tables, appended to the
// matching store, and the response carries the column-health report so the
// operator sees immediately what the file was missing.
type UploadHandler struct {
	properties repository.PropertiesRepo
	tenants    repository.TenantsRepo
	logger     *zap.Logger
}

func NewUploadHandler(properties repository.PropertiesRepo, tenants repository.TenantsRepo, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{properties: properties, tenants: tenants, logger: logger}
}

type uploadResult struct {
	Kind     string                 `json:"kind"`
	Inserted int                    `json:"inserted"`
	Health   normalize.HealthReport `json:"health"`
	Preview  []map[string]string    `json:"preview"`
}

func (h *UploadHandler) Dataset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid multipart body"))
		return
	}

	kind := r.FormValue("kind")
	if kind == "" {
		kind = "tenants"
	}
	if kind != "tenants" && kind != "properties" {
		writeJSON(w, http.StatusBadRequest, Fail("kind must be tenants or properties"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("file is required"))
		return
	}
	defer file.Close()

	rows, err := parseDataset(file, header.Filename)
	if err != nil {
		h.logger.Warn("dataset parse failed",
			zap.String("filename", header.Filename),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadRequest, Fail("could not parse dataset"))
		return
	}

	// Health inspects the file's own headings, before any aliasing.
	health := normalize.DataHealth(rows)

	result := uploadResult{Kind: kind, Health: health, Preview: []map[string]string{}}
	for _, row := range rows {
		raw := make(map[string]any, len(row))
		for k, v := range row {
			raw[k] = v
		}
		var canonical map[string]string
		if kind == "properties" {
			created, err := h.properties.Create(r.Context(), raw)
			if err != nil {
				h.logger.Error("insert property row failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, Fail("could not store dataset"))
				return
			}
			canonical = map[string]string{
				"property_id": created.PropertyID,
				"city":        created.City,
				"locality":    created.Locality,
				"rent":        created.Rent,
				"bedrooms":    created.Bedrooms,
			}
		} else {
			created, err := h.tenants.Create(r.Context(), raw)
			if err != nil {
				h.logger.Error("insert tenant row failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, Fail("could not store dataset"))
				return
			}
			canonical = map[string]string{
				"tenant_id": created.TenantID,
				"name":      created.Name,
				"phone":     created.Phone,
				"city":      created.City,
			}
		}
		result.Inserted++
		if len(result.Preview) < 5 {
			result.Preview = append(result.Preview, canonical)
		}
	}

	h.logger.Info("Dataset uploaded",
		zap.String("kind", kind),
		zap.String("filename", header.Filename),
		zap.Int("rows", result.Inserted),
		zap.Int("completeness", health.CompletenessScore),
	)
	writeJSON(w, http.StatusOK, Ok(result))
}

// parseDataset reads CSV or xlsx into heading-keyed rows. Short rows pad
// with empty strings; extra cells beyond the heading row are dropped.
func parseDataset(file io.Reader, filename string) ([]map[string]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var records [][]string

	if ext == ".xlsx" {
		wb, err := excelize.OpenReader(file)
		if err != nil {
			return nil, err
		}
		defer wb.Close()
		records, err = wb.GetRows(wb.GetSheetName(0))
		if err != nil {
			return nil, err
		}
	} else {
		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		var err error
		records, err = reader.ReadAll()
		if err != nil {
			return nil, err
		}
	}

	if len(records) < 2 {
		return nil, nil
	}

	headings := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headings))
		for i, heading := range headings {
			if i < len(rec) {
				row[heading] = rec[i]
			} else {
				row[heading] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
