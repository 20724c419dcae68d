package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/normalize"
)

var propertyHeader = []string{
	"property_id", "property_code", "city", "locality", "address", "rent",
	"bedrooms", "amenities", "furnished", "status", "owner_name",
	"owner_phone", "owner_id", "created_at",
}

// CSVPropertiesRepo keeps properties.csv in memory behind a RWMutex and
// writes the whole file back on every mutation. Rows are normalized on load
// so legacy-layout files and canonical files can be mixed freely.
type CSVPropertiesRepo struct {
	path  string
	mu    sync.RWMutex
	props []domain.Property
}

func NewCSVPropertiesRepo(path string) (*CSVPropertiesRepo, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	rows, err := readCSVRows(path)
	if err != nil {
		return nil, err
	}
	repo := &CSVPropertiesRepo{path: path}
	for _, row := range rows {
		canonical := normalize.PropertyRow(anyRow(row))
		repo.props = append(repo.props, propertyFromRow(canonical))
	}
	return repo, nil
}

func (r *CSVPropertiesRepo) List(_ context.Context) ([]domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Property, len(r.props))
	copy(out, r.props)
	return out, nil
}

func (r *CSVPropertiesRepo) Get(_ context.Context, id string) (*domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.props {
		if r.props[i].PropertyID == id {
			p := r.props[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// GetByCode resolves a human-assigned property code, case-insensitively.
func (r *CSVPropertiesRepo) GetByCode(_ context.Context, code string) (*domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.props {
		if r.props[i].PropertyCode != "" && strings.EqualFold(r.props[i].PropertyCode, code) {
			p := r.props[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *CSVPropertiesRepo) Create(_ context.Context, raw map[string]any) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := normalize.PropertyRow(raw)
	if row["property_id"] == "" {
		row["property_id"] = normalize.NewID("PROP")
	}
	// The alias pass keeps only sheet columns; owner attribution comes from
	// the request, not the sheet.
	if row["owner_id"] == "" {
		if owner, ok := raw["owner_id"].(string); ok {
			row["owner_id"] = owner
		}
	}
	if row["status"] == "" {
		row["status"] = domain.PropertyStatusAvailable
	}
	if row["created_at"] == "" {
		row["created_at"] = time.Now().UTC().Format(time.RFC3339)
	}

	p := propertyFromRow(row)
	r.props = append(r.props, p)
	if err := r.save(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CSVPropertiesRepo) Update(_ context.Context, id string, patch map[string]any) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.props {
		if r.props[i].PropertyID != id {
			continue
		}
		row := rowFromProperty(r.props[i])
		overlayPatch(row, patch)
		r.props[i] = propertyFromRow(row)
		if err := r.save(); err != nil {
			return nil, err
		}
		p := r.props[i]
		return &p, nil
	}
	return nil, ErrNotFound
}

// Delete removes the row for good. Matching paths filter on status instead;
// this is the explicit delete surface.
func (r *CSVPropertiesRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.props {
		if r.props[i].PropertyID == id {
			r.props = append(r.props[:i], r.props[i+1:]...)
			return r.save()
		}
	}
	return ErrNotFound
}

func (r *CSVPropertiesRepo) save() error {
	rows := make([]map[string]string, len(r.props))
	for i, p := range r.props {
		rows[i] = rowFromProperty(p)
	}
	return writeCSVRows(r.path, propertyHeader, rows)
}

func propertyFromRow(row map[string]string) domain.Property {
	return domain.Property{
		PropertyID:   row["property_id"],
		PropertyCode: row["property_code"],
		City:         row["city"],
		Locality:     row["locality"],
		Address:      row["address"],
		Rent:         row["rent"],
		Bedrooms:     row["bedrooms"],
		Amenities:    row["amenities"],
		Furnished:    row["furnished"],
		Status:       row["status"],
		OwnerName:    row["owner_name"],
		OwnerPhone:   row["owner_phone"],
		OwnerID:      row["owner_id"],
		CreatedAt:    row["created_at"],
	}
}

func rowFromProperty(p domain.Property) map[string]string {
	return map[string]string{
		"property_id":   p.PropertyID,
		"property_code": p.PropertyCode,
		"city":          p.City,
		"locality":      p.Locality,
		"address":       p.Address,
		"rent":          p.Rent,
		"bedrooms":      p.Bedrooms,
		"amenities":     p.Amenities,
		"furnished":     p.Furnished,
		"status":        p.Status,
		"owner_name":    p.OwnerName,
		"owner_phone":   p.OwnerPhone,
		"owner_id":      p.OwnerID,
		"created_at":    p.CreatedAt,
	}
}

func anyRow(row map[string]string) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

// overlayPatch applies a JSON patch body onto a canonical row. List-valued
// fields accept arrays; everything else is stringified.
func overlayPatch(row map[string]string, patch map[string]any) {
	for k, v := range patch {
		switch k {
		case "amenities", "localities", "preferences", "consent_scope":
			row[k] = normalize.FlattenList(v)
		default:
			if v == nil {
				row[k] = ""
				continue
			}
			if s, ok := v.(string); ok {
				row[k] = s
				continue
			}
			if f, ok := v.(float64); ok && f == float64(int64(f)) {
				row[k] = fmt.Sprintf("%d", int64(f))
				continue
			}
			row[k] = fmt.Sprint(v)
		}
	}
}
