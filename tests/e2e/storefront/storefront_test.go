//go:build e2e

package storefront_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"promenu/internal/domain/catalog"
	"promenu/internal/domain/tenant"
	"promenu/internal/infra/backend"
	"promenu/internal/infra/cache"
	"promenu/internal/pkg/clock"
	"promenu/internal/pkg/config"
	"promenu/internal/pkg/errs"
	"promenu/internal/pkg/password"
	"promenu/internal/usecase"
	"promenu/tests/e2e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

type StorefrontE2ETestSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	tenants  *backend.TenantStore
	catalog  *backend.CatalogStore
	assets   *backend.AssetStore
	accounts *backend.AccountStore
	gateway  usecase.TenantGateway
}

func (s *StorefrontE2ETestSuite) SetupSuite() {
	pool, _ := e2e.SetupBackend(s.T())
	s.pool = pool

	logger := slog.Default()
	s.tenants = backend.NewTenantStore(pool, logger)
	s.catalog = backend.NewCatalogStore(pool, logger)
	s.assets = backend.NewAssetStore(pool, config.AssetsConfig{BaseURL: "/assets"}, logger)
	s.accounts = backend.NewAccountStore(pool, logger)

	clk := clock.NewRealClock()
	snaps := cache.NewStore[usecase.Snapshot](nil, "snapshot:", clk, logger)
	listing := cache.NewStore[[]tenant.Tenant](nil, "listing:", clk, logger)
	s.gateway = usecase.NewTenantGateway(s.tenants, s.catalog, snaps, listing, config.CacheConfig{
		ListingTTL: 5 * time.Minute,
		TenantTTL:  10 * time.Minute,
	}, logger)
}

func TestStorefrontE2ESuite(t *testing.T) {
	suite.Run(t, new(StorefrontE2ETestSuite))
}

func (s *StorefrontE2ETestSuite) createTenant(id string) *tenant.Tenant {
	t := &tenant.Tenant{
		ID:          tenant.ID(id),
		Name:        "Shop " + id,
		OwnerEmails: tenant.OwnerEmails{"owner@example.com"},
	}
	s.Require().NoError(s.tenants.CreateTenant(context.Background(), t))
	return t
}

func (s *StorefrontE2ETestSuite) TestTenantLifecycle() {
	ctx := context.Background()
	s.createTenant("lifecycle-deli")

	got, err := s.tenants.GetTenant(ctx, "lifecycle-deli")
	s.Require().NoError(err)
	s.Equal("Shop lifecycle-deli", got.Name)
	s.True(got.OwnerEmails.Contains("owner@example.com"))

	got.Name = "Renamed"
	got.OwnerEmails = tenant.OwnerEmails{"owner@example.com", "second@example.com"}
	s.Require().NoError(s.tenants.UpdateTenant(ctx, got))

	updated, err := s.tenants.GetTenant(ctx, "lifecycle-deli")
	s.Require().NoError(err)
	s.Equal("Renamed", updated.Name)
	s.Len(updated.OwnerEmails, 2)

	s.Require().NoError(s.tenants.DeleteTenant(ctx, "lifecycle-deli"))

	_, err = s.tenants.GetTenant(ctx, "lifecycle-deli")
	s.Error(err)

	s.Run("duplicate id rejected", func() {
		s.createTenant("dupe-deli")
		err := s.tenants.CreateTenant(ctx, &tenant.Tenant{ID: "dupe-deli", Name: "Again"})
		s.Error(err)
	})
}

func (s *StorefrontE2ETestSuite) TestCatalogLifecycle() {
	ctx := context.Background()
	s.createTenant("catalog-deli")

	item := &catalog.Item{
		ID:           uuid.New(),
		TenantID:     "catalog-deli",
		Name:         "Espresso",
		PriceCents:   250,
		QuantityType: catalog.QuantityUnit,
		DiscountType: catalog.DiscountBulkTier,
	}
	item.DiscountValue = 3
	s.Require().NoError(s.catalog.AddItem(ctx, item))

	items, err := s.catalog.ListItems(ctx, "catalog-deli")
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(catalog.DiscountBulkTier, items[0].DiscountType)

	item.PriceCents = 300
	s.Require().NoError(s.catalog.UpdateItem(ctx, item))

	got, err := s.catalog.GetItem(ctx, "catalog-deli", item.ID)
	s.Require().NoError(err)
	s.Equal(int64(300), got.PriceCents)

	s.Require().NoError(s.catalog.DeleteItem(ctx, "catalog-deli", item.ID))
	_, err = s.catalog.GetItem(ctx, "catalog-deli", item.ID)
	s.Error(err)

	s.Run("unknown discount tag normalizes on read", func() {
		raw := uuid.New()
		_, err := s.pool.Exec(ctx,
			`INSERT INTO catalog_items (id, tenant_id, name, price_cents, quantity_type, discount_type)
			 VALUES ($1, 'catalog-deli', 'Mystery', 100, 'unit', 'bogo')`, raw)
		s.Require().NoError(err)

		got, err := s.catalog.GetItem(ctx, "catalog-deli", raw)
		s.Require().NoError(err)
		s.Equal(catalog.DiscountNone, got.DiscountType)
	})

	s.Run("tenant delete cascades to items", func() {
		s.createTenant("cascade-deli")
		cascaded := &catalog.Item{ID: uuid.New(), TenantID: "cascade-deli", Name: "Bagel", PriceCents: 180}
		s.Require().NoError(s.catalog.AddItem(ctx, cascaded))

		s.Require().NoError(s.tenants.DeleteTenant(ctx, "cascade-deli"))
		remaining, err := s.catalog.ListItems(ctx, "cascade-deli")
		s.Require().NoError(err)
		s.Empty(remaining)
	})
}

func (s *StorefrontE2ETestSuite) TestGatewayAgainstRealBackend() {
	ctx := context.Background()
	s.createTenant("gateway-deli")
	item := &catalog.Item{ID: uuid.New(), TenantID: "gateway-deli", Name: "Espresso", PriceCents: 250}
	s.Require().NoError(s.catalog.AddItem(ctx, item))

	snap, err := s.gateway.LoadTenantAndCatalog(ctx, "gateway-deli", false)
	s.Require().NoError(err)
	s.Equal(tenant.ID("gateway-deli"), snap.Tenant.ID)
	s.Require().Len(snap.Catalog, 1)

	// A second load inside the TTL serves the published snapshot even though
	// the backend has moved on.
	item.Name = "Ristretto"
	s.Require().NoError(s.catalog.UpdateItem(ctx, item))

	snap, err = s.gateway.LoadTenantAndCatalog(ctx, "gateway-deli", false)
	s.Require().NoError(err)
	s.Equal("Espresso", snap.Catalog[0].Name)

	// Force refresh picks up the change.
	snap, err = s.gateway.LoadTenantAndCatalog(ctx, "gateway-deli", true)
	s.Require().NoError(err)
	s.Equal("Ristretto", snap.Catalog[0].Name)

	s.Run("missing tenant maps to sentinel", func() {
		_, err := s.gateway.LoadTenantAndCatalog(ctx, "no-such-shop", false)
		s.ErrorIs(err, errs.ErrTenantNotFound)
	})
}

func (s *StorefrontE2ETestSuite) TestAssetRoundTrip() {
	ctx := context.Background()
	data := []byte{0x52, 0x49, 0x46, 0x46, 0x00}

	url, err := s.assets.Store(ctx, "tenants/asset-deli/items/a.webp", "image/webp", data)
	s.Require().NoError(err)
	s.Equal("/assets/tenants/asset-deli/items/a.webp", url)

	got, contentType, err := s.assets.Retrieve(ctx, "tenants/asset-deli/items/a.webp")
	s.Require().NoError(err)
	s.Equal(data, got)
	s.Equal("image/webp", contentType)

	// Overwrite through the upsert path.
	_, err = s.assets.Store(ctx, "tenants/asset-deli/items/a.webp", "image/png", []byte{0x89})
	s.Require().NoError(err)
	got, contentType, err = s.assets.Retrieve(ctx, "tenants/asset-deli/items/a.webp")
	s.Require().NoError(err)
	s.Equal([]byte{0x89}, got)
	s.Equal("image/png", contentType)

	s.Require().NoError(s.assets.Delete(ctx, "tenants/asset-deli/items/a.webp"))
	_, _, err = s.assets.Retrieve(ctx, "tenants/asset-deli/items/a.webp")
	s.Error(err)
}

func (s *StorefrontE2ETestSuite) TestAccounts() {
	ctx := context.Background()
	hash, err := password.HashPassword("correct-horse")
	s.Require().NoError(err)

	s.Require().NoError(s.accounts.Create(ctx, "login@example.com", hash))

	account, err := s.accounts.FindByEmail(ctx, "LOGIN@example.com")
	s.Require().NoError(err)
	s.Equal("login@example.com", account.Email)
	s.NoError(password.ComparePassword(account.PasswordHash, "correct-horse"))

	_, err = s.accounts.FindByEmail(ctx, "ghost@example.com")
	s.Error(err)
}
