// Package repository persists records in flat files under the data
// directory: properties and tenants in CSV (the upload/export format),
// everything else in JSON collections. There is no schema enforcement and
// no foreign keys; lookups that find nothing return ErrNotFound and joins
// against missing records resolve to nil.
package repository

import (
	"context"
	"errors"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type PropertiesRepo interface {
	List(ctx context.Context) ([]domain.Property, error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	GetByCode(ctx context.Context, code string) (*domain.Property, error)
	Create(ctx context.Context, raw map[string]any) (*domain.Property, error)
	Update(ctx context.Context, id string, patch map[string]any) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
}

type TenantsRepo interface {
	List(ctx context.Context) ([]domain.Tenant, error)
	Get(ctx context.Context, id string) (*domain.Tenant, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Tenant, error)
	Create(ctx context.Context, raw map[string]any) (*domain.Tenant, error)
	Update(ctx context.Context, id string, patch map[string]any) (*domain.Tenant, error)
}

type LeadsRepo interface {
	List(ctx context.Context, status string) ([]domain.Lead, error)
	Get(ctx context.Context, id string) (*domain.Lead, error)
	Create(ctx context.Context, lead domain.Lead) (*domain.Lead, error)
	Update(ctx context.Context, id string, patch map[string]any) (*domain.Lead, error)
}

type UsersRepo interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch map[string]any) (*domain.User, error)
}

type CallsRepo interface {
	List(ctx context.Context) ([]domain.CallLog, error)
	Get(ctx context.Context, id string) (*domain.CallLog, error)
	Create(ctx context.Context, call domain.CallLog) (*domain.CallLog, error)
	Update(ctx context.Context, id string, patch map[string]any) (*domain.CallLog, error)
}
