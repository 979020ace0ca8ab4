//go:build unit

package commands_test

import (
	"context"

	"promenu/internal/domain/catalog"
	"promenu/internal/domain/tenant"
	"promenu/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockTenantBackend struct {
	mock.Mock
}

func (m *mockTenantBackend) GetTenant(ctx context.Context, id tenant.ID) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*tenant.Tenant); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTenantBackend) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	args := m.Called(ctx)
	if ts, ok := args.Get(0).([]tenant.Tenant); ok {
		return ts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTenantBackend) CreateTenant(ctx context.Context, t *tenant.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTenantBackend) UpdateTenant(ctx context.Context, t *tenant.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTenantBackend) DeleteTenant(ctx context.Context, id tenant.ID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCatalogBackend struct {
	mock.Mock
}

func (m *mockCatalogBackend) ListItems(ctx context.Context, tenantID tenant.ID) ([]catalog.Item, error) {
	args := m.Called(ctx, tenantID)
	if items, ok := args.Get(0).([]catalog.Item); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogBackend) GetItem(ctx context.Context, tenantID tenant.ID, itemID uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, tenantID, itemID)
	if item, ok := args.Get(0).(*catalog.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogBackend) AddItem(ctx context.Context, item *catalog.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockCatalogBackend) UpdateItem(ctx context.Context, item *catalog.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockCatalogBackend) DeleteItem(ctx context.Context, tenantID tenant.ID, itemID uuid.UUID) error {
	return m.Called(ctx, tenantID, itemID).Error(0)
}

type mockAssetBackend struct {
	mock.Mock
}

func (m *mockAssetBackend) Store(ctx context.Context, path, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, path, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *mockAssetBackend) Retrieve(ctx context.Context, path string) ([]byte, string, error) {
	args := m.Called(ctx, path)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *mockAssetBackend) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) LoadTenantAndCatalog(ctx context.Context, id tenant.ID, force bool) (*usecase.Snapshot, error) {
	args := m.Called(ctx, id, force)
	if snap, ok := args.Get(0).(*usecase.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) ListAllTenants(ctx context.Context, force bool) ([]tenant.Tenant, error) {
	args := m.Called(ctx, force)
	if ts, ok := args.Get(0).([]tenant.Tenant); ok {
		return ts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) Current(id tenant.ID) (*usecase.Snapshot, bool) {
	args := m.Called(id)
	if snap, ok := args.Get(0).(*usecase.Snapshot); ok {
		return snap, args.Bool(1)
	}
	return nil, args.Bool(1)
}

func (m *mockGateway) CurrentListing() ([]tenant.Tenant, bool) {
	args := m.Called()
	if ts, ok := args.Get(0).([]tenant.Tenant); ok {
		return ts, args.Bool(1)
	}
	return nil, args.Bool(1)
}

func (m *mockGateway) PatchSnapshot(ctx context.Context, id tenant.ID, fn func(*usecase.Snapshot)) bool {
	return m.Called(ctx, id, fn).Bool(0)
}

func (m *mockGateway) PatchListing(ctx context.Context, fn func(*[]tenant.Tenant)) bool {
	return m.Called(ctx, fn).Bool(0)
}

func (m *mockGateway) InvalidateTenant(ctx context.Context, id tenant.ID) {
	m.Called(ctx, id)
}

func (m *mockGateway) InvalidateListing(ctx context.Context) {
	m.Called(ctx)
}
