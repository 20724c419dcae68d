package repository

import (
	"context"
	"sync"
	"time"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/normalize"
)

var tenantHeader = []string{
	"tenant_id", "name", "phone", "whatsapp_number", "email", "city",
	"localities", "budget_min", "budget_max", "bedrooms", "amenities",
	"preferences", "consent_scope", "created_at",
}

// CSVTenantsRepo mirrors CSVPropertiesRepo for tenants.csv. Tenants are
// never hard-deleted: the matching path treats every tenant as a live lead.
type CSVTenantsRepo struct {
	path    string
	mu      sync.RWMutex
	tenants []domain.Tenant
}

func NewCSVTenantsRepo(path string) (*CSVTenantsRepo, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	rows, err := readCSVRows(path)
	if err != nil {
		return nil, err
	}
	repo := &CSVTenantsRepo{path: path}
	for _, row := range rows {
		canonical := normalize.TenantRow(anyRow(row))
		repo.tenants = append(repo.tenants, tenantFromRow(canonical))
	}
	return repo, nil
}

func (r *CSVTenantsRepo) List(_ context.Context) ([]domain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Tenant, len(r.tenants))
	copy(out, r.tenants)
	return out, nil
}

func (r *CSVTenantsRepo) Get(_ context.Context, id string) (*domain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.tenants {
		if r.tenants[i].TenantID == id {
			t := r.tenants[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

// FindByPhone resolves a tenant across formatting variants of either the
// phone or the whatsapp number.
func (r *CSVTenantsRepo) FindByPhone(_ context.Context, phone string) (*domain.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.tenants {
		pair := normalize.PhonePair{
			Phone:    r.tenants[i].Phone,
			Whatsapp: r.tenants[i].WhatsappNumber,
		}
		if pair.MatchesPhone(phone) {
			t := r.tenants[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (r *CSVTenantsRepo) Create(_ context.Context, raw map[string]any) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := normalize.TenantRow(raw)
	if row["tenant_id"] == "" {
		row["tenant_id"] = normalize.NewID("TEN")
	}
	if row["whatsapp_number"] == "" {
		row["whatsapp_number"] = row["phone"]
	}
	if row["created_at"] == "" {
		row["created_at"] = time.Now().UTC().Format(time.RFC3339)
	}

	t := tenantFromRow(row)
	r.tenants = append(r.tenants, t)
	if err := r.save(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *CSVTenantsRepo) Update(_ context.Context, id string, patch map[string]any) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tenants {
		if r.tenants[i].TenantID != id {
			continue
		}
		row := rowFromTenant(r.tenants[i])
		overlayPatch(row, patch)
		r.tenants[i] = tenantFromRow(row)
		if err := r.save(); err != nil {
			return nil, err
		}
		t := r.tenants[i]
		return &t, nil
	}
	return nil, ErrNotFound
}

func (r *CSVTenantsRepo) save() error {
	rows := make([]map[string]string, len(r.tenants))
	for i, t := range r.tenants {
		rows[i] = rowFromTenant(t)
	}
	return writeCSVRows(r.path, tenantHeader, rows)
}

func tenantFromRow(row map[string]string) domain.Tenant {
	return domain.Tenant{
		TenantID:       row["tenant_id"],
		Name:           row["name"],
		Phone:          row["phone"],
		WhatsappNumber: row["whatsapp_number"],
		Email:          row["email"],
		City:           row["city"],
		Localities:     row["localities"],
		BudgetMin:      row["budget_min"],
		BudgetMax:      row["budget_max"],
		Bedrooms:       row["bedrooms"],
		Amenities:      row["amenities"],
		Preferences:    row["preferences"],
		ConsentScope:   row["consent_scope"],
		CreatedAt:      row["created_at"],
	}
}

func rowFromTenant(t domain.Tenant) map[string]string {
	return map[string]string{
		"tenant_id":       t.TenantID,
		"name":            t.Name,
		"phone":           t.Phone,
		"whatsapp_number": t.WhatsappNumber,
		"email":           t.Email,
		"city":            t.City,
		"localities":      t.Localities,
		"budget_min":      t.BudgetMin,
		"budget_max":      t.BudgetMax,
		"bedrooms":        t.Bedrooms,
		"amenities":       t.Amenities,
		"preferences":     t.Preferences,
		"consent_scope":   t.ConsentScope,
		"created_at":      t.CreatedAt,
	}
}
