package usecase

import (
	"context"

	"promenu/internal/domain/catalog"
	"promenu/internal/domain/tenant"
	"promenu/internal/infra"
	"promenu/internal/pkg/errs"

	"github.com/google/uuid"
)

// Ports to the external data backend. Every call is asynchronous from the
// caller's perspective and may fail; classification happens through
// infra.BackendError kinds, translated to sentinels by MapBackendErr.

type TenantBackend interface {
	GetTenant(ctx context.Context, id tenant.ID) (*tenant.Tenant, error)
	ListTenants(ctx context.Context) ([]tenant.Tenant, error)
	CreateTenant(ctx context.Context, t *tenant.Tenant) error
	UpdateTenant(ctx context.Context, t *tenant.Tenant) error
	DeleteTenant(ctx context.Context, id tenant.ID) error
}

type CatalogBackend interface {
	ListItems(ctx context.Context, tenantID tenant.ID) ([]catalog.Item, error)
	GetItem(ctx context.Context, tenantID tenant.ID, itemID uuid.UUID) (*catalog.Item, error)
	AddItem(ctx context.Context, item *catalog.Item) error
	UpdateItem(ctx context.Context, item *catalog.Item) error
	DeleteItem(ctx context.Context, tenantID tenant.ID, itemID uuid.UUID) error
}

type AssetBackend interface {
	Store(ctx context.Context, path, contentType string, data []byte) (string, error)
	Retrieve(ctx context.Context, path string) ([]byte, string, error)
	Delete(ctx context.Context, path string) error
}

// Account is an owner credential record as the login flow sees it.
type Account struct {
	Email        string
	PasswordHash string
}

type AccountBackend interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, email, passwordHash string) error
}

// MapBackendErr marks a backend failure with the matching domain sentinel so
// callers can branch with errors.Is without seeing driver details.
func MapBackendErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, notFound)
	}
	return errs.Mark(err, errs.ErrBackendFailure)
}
